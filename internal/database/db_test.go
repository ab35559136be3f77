package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vijay-prabhu/resumeats/internal/ats"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "resumeats-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func sampleAnalysis(score float64, createdAt time.Time) *Analysis {
	domain := "software"
	return &Analysis{
		Source: "resume.pdf",
		Domain: &domain,
		Score: ats.ScoreBreakdown{
			KeywordScore:    25,
			SectionScore:    10,
			FrequencyScore:  7.5,
			FormattingScore: ats.FormattingScore,
			Total:           score,
		},
		KeywordMatch:    6,
		SectionMatch:    3,
		MissingKeywords: []string{"aws", "nlp"},
		MissingSections: []string{"summary"},
		FeedbackCount:   4,
		CreatedAt:       createdAt,
	}
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if db == nil {
		t.Fatal("expected non-nil database")
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='analyses'").Scan(&count)
	if err != nil {
		t.Fatalf("failed to query tables: %v", err)
	}
	if count != 1 {
		t.Errorf("expected analyses table to exist")
	}
}

func TestReopenKeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "history.db")
	ctx := context.Background()

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := db.CreateAnalysis(ctx, sampleAnalysis(57.5, time.Now())); err != nil {
		t.Fatalf("CreateAnalysis failed: %v", err)
	}
	db.Close()

	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer db.Close()

	list, err := db.ListAnalyses(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListAnalyses failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 analysis after reopen, got %d", len(list))
	}
}

func TestAnalysisCRUD(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	a := sampleAnalysis(57.5, time.Now())
	if err := db.CreateAnalysis(ctx, a); err != nil {
		t.Fatalf("CreateAnalysis failed: %v", err)
	}
	if a.ID == "" {
		t.Error("expected ID to be set after create")
	}

	fetched, err := db.GetAnalysis(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected analysis to be found")
	}
	if fetched.Source != "resume.pdf" {
		t.Errorf("expected source resume.pdf, got %s", fetched.Source)
	}
	if fetched.Domain == nil || *fetched.Domain != "software" {
		t.Errorf("expected domain software, got %v", fetched.Domain)
	}
	if fetched.Score != a.Score {
		t.Errorf("expected score %+v, got %+v", a.Score, fetched.Score)
	}
	if len(fetched.MissingKeywords) != 2 || fetched.MissingKeywords[0] != "aws" || fetched.MissingKeywords[1] != "nlp" {
		t.Errorf("unexpected missing keywords: %v", fetched.MissingKeywords)
	}
	if len(fetched.MissingSections) != 1 || fetched.MissingSections[0] != "summary" {
		t.Errorf("unexpected missing sections: %v", fetched.MissingSections)
	}
	if fetched.FeedbackCount != 4 {
		t.Errorf("expected feedback count 4, got %d", fetched.FeedbackCount)
	}

	if err := db.DeleteAnalysis(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAnalysis failed: %v", err)
	}
	gone, err := db.GetAnalysis(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAnalysis after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("expected analysis to be deleted")
	}

	if err := db.DeleteAnalysis(ctx, a.ID); err == nil {
		t.Error("expected error deleting missing analysis")
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	a, err := db.GetAnalysis(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil, got %+v", a)
	}
}

func TestNilListsStoredAsEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	a := &Analysis{Source: "notes.txt", Score: ats.ScoreBreakdown{Total: 15}}
	if err := db.CreateAnalysis(ctx, a); err != nil {
		t.Fatalf("CreateAnalysis failed: %v", err)
	}

	fetched, err := db.GetAnalysis(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}
	if fetched.Domain != nil {
		t.Errorf("expected nil domain, got %q", *fetched.Domain)
	}
	if fetched.MissingKeywords == nil || len(fetched.MissingKeywords) != 0 {
		t.Errorf("expected empty missing keywords, got %#v", fetched.MissingKeywords)
	}
	if fetched.MissingSections == nil || len(fetched.MissingSections) != 0 {
		t.Errorf("expected empty missing sections, got %#v", fetched.MissingSections)
	}
}

func TestListAnalyses(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now()
	scores := []float64{20, 40, 60}
	for i, s := range scores {
		a := sampleAnalysis(s, now.Add(time.Duration(i)*time.Minute))
		if err := db.CreateAnalysis(ctx, a); err != nil {
			t.Fatalf("CreateAnalysis failed: %v", err)
		}
	}

	other := "frontend"
	fe := sampleAnalysis(80, now.Add(-time.Hour))
	fe.Domain = &other
	if err := db.CreateAnalysis(ctx, fe); err != nil {
		t.Fatalf("CreateAnalysis failed: %v", err)
	}

	tests := []struct {
		name      string
		opts      ListOptions
		wantCount int
		wantFirst float64
	}{
		{"all newest first", ListOptions{}, 4, 60},
		{"limit", ListOptions{Limit: 2}, 2, 60},
		{"limit offset", ListOptions{Limit: 2, Offset: 2}, 2, 20},
		{"domain filter", ListOptions{Domain: &other}, 1, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := db.ListAnalyses(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListAnalyses failed: %v", err)
			}
			if len(list) != tt.wantCount {
				t.Fatalf("expected %d analyses, got %d", tt.wantCount, len(list))
			}
			if list[0].Score.Total != tt.wantFirst {
				t.Errorf("expected first score %v, got %v", tt.wantFirst, list[0].Score.Total)
			}
		})
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	stats, err := db.GetStats(ctx, nil)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalAnalyses != 0 || stats.LatestScore != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	now := time.Now()
	for i, s := range []float64{30, 90, 60} {
		if err := db.CreateAnalysis(ctx, sampleAnalysis(s, now.Add(time.Duration(i)*time.Second))); err != nil {
			t.Fatalf("CreateAnalysis failed: %v", err)
		}
	}

	stats, err = db.GetStats(ctx, nil)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalAnalyses != 3 {
		t.Errorf("expected 3 analyses, got %d", stats.TotalAnalyses)
	}
	if stats.AverageScore != 60 {
		t.Errorf("expected average 60, got %v", stats.AverageScore)
	}
	if stats.BestScore != 90 {
		t.Errorf("expected best 90, got %v", stats.BestScore)
	}
	if stats.LatestScore != 60 {
		t.Errorf("expected latest 60, got %v", stats.LatestScore)
	}
}

func TestFromResult(t *testing.T) {
	r := &ats.Result{
		Domain:       "data",
		KeywordMatch: 2,
		SectionMatch: 1,
		Gaps: ats.Gaps{
			MissingKeywords: []string{"spark"},
			MissingSections: []string{"skills"},
		},
	}
	r.Total = 42

	a := FromResult("cv.docx", r)
	if a.Source != "cv.docx" {
		t.Errorf("expected source cv.docx, got %s", a.Source)
	}
	if a.Domain == nil || *a.Domain != "data" {
		t.Errorf("expected domain data, got %v", a.Domain)
	}
	if a.Score.Total != 42 {
		t.Errorf("expected total 42, got %v", a.Score.Total)
	}

	single := FromResult("cv.txt", &ats.Result{})
	if single.Domain != nil {
		t.Errorf("expected nil domain for single-profile result")
	}
}
