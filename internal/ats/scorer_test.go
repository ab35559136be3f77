package ats

import (
	"errors"
	"math"
	"strings"
	"testing"
)

var (
	testKeywords = []string{
		"python", "machine learning", "data science", "sql", "react", "django",
		"java", "deep learning", "api", "aws", "tensorflow", "nlp",
	}
	testSections = SectionSet{"education", "experience", "projects", "skills", "certifications", "summary"}
)

func softwareCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Profile{{Domain: "software", Keywords: testKeywords}}, testSections)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

func TestScore(t *testing.T) {
	c := softwareCatalog(t)

	full := strings.Join(testKeywords, ", ") + ". " + strings.Join(testSections, ". ")

	tests := []struct {
		name         string
		text         string
		wantTotal    float64
		wantKeywords int
		wantSections int
	}{
		{
			name:         "nothing matches",
			text:         "Hello there",
			wantTotal:    15,
			wantKeywords: 0,
			wantSections: 0,
		},
		{
			name:         "partial match",
			text:         "Experience with Python and SQL. Education at MIT.",
			wantTotal:    32.5,
			wantKeywords: 2,
			wantSections: 2,
		},
		{
			name:         "everything present",
			text:         full,
			wantTotal:    100,
			wantKeywords: 12,
			wantSections: 6,
		},
		{
			name:         "substrings of longer words do not count",
			text:         "SQLAlchemy, JavaScript and APIs",
			wantTotal:    15,
			wantKeywords: 0,
			wantSections: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := c.Score(tt.text, "software")
			if err != nil {
				t.Fatalf("Score failed: %v", err)
			}
			if s.Breakdown.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v (%+v)", s.Breakdown.Total, tt.wantTotal, s.Breakdown)
			}
			if s.KeywordMatch != tt.wantKeywords {
				t.Errorf("KeywordMatch = %d, want %d", s.KeywordMatch, tt.wantKeywords)
			}
			if s.SectionMatch != tt.wantSections {
				t.Errorf("SectionMatch = %d, want %d", s.SectionMatch, tt.wantSections)
			}
			if s.Breakdown.FormattingScore != FormattingScore {
				t.Errorf("FormattingScore = %v, want %v", s.Breakdown.FormattingScore, FormattingScore)
			}
		})
	}
}

func TestScoreFrequencyIsCapped(t *testing.T) {
	c := MustCatalog([]Profile{{Domain: "py", Keywords: []string{"python"}}}, SectionSet{"skills"})

	s, err := c.Score("python python python python", "py")
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if s.KeywordFrequency != 4 {
		t.Errorf("KeywordFrequency = %d, want 4", s.KeywordFrequency)
	}
	if s.Breakdown.FrequencyScore != FrequencyWeight {
		t.Errorf("FrequencyScore = %v, want %v", s.Breakdown.FrequencyScore, FrequencyWeight)
	}
	// 50 keyword + 0 section + 15 frequency + 15 formatting
	if s.Breakdown.Total != 80 {
		t.Errorf("Total = %v, want 80", s.Breakdown.Total)
	}
}

func TestScoreBoundsAndRounding(t *testing.T) {
	c := softwareCatalog(t)

	inputs := []string{
		"",
		"python",
		"java java java java java java java java java java java java java",
		"Summary. Skills: React, Django, AWS. Projects. Python python python.",
		strings.Repeat("machine learning deep learning nlp tensorflow ", 50),
	}

	for _, in := range inputs {
		s, err := c.Score(in, "software")
		if err != nil {
			t.Fatalf("Score(%q) failed: %v", in, err)
		}
		total := s.Breakdown.Total
		if total < 0 || total > MaxScore {
			t.Errorf("Score(%q) total %v out of range", in, total)
		}
		if math.Round(total*100)/100 != total {
			t.Errorf("Score(%q) total %v not rounded to 2 decimals", in, total)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	c := softwareCatalog(t)
	text := "Experience: built a Django API on AWS. Skills: Python, SQL."

	first, _ := c.Score(text, "software")
	for i := 0; i < 5; i++ {
		again, _ := c.Score(text, "software")
		if again.Breakdown != first.Breakdown {
			t.Fatalf("run %d: %+v != %+v", i, again.Breakdown, first.Breakdown)
		}
	}
}

func TestScoreUnknownDomain(t *testing.T) {
	c := softwareCatalog(t)

	_, err := c.Score("python", "marketing")
	if !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestGaps(t *testing.T) {
	c := softwareCatalog(t)
	text := "Experience: Python, SQL, Machine Learning. Education: BSc."

	g, err := c.Gaps(text, "software")
	if err != nil {
		t.Fatalf("Gaps failed: %v", err)
	}

	found := map[string]bool{"python": true, "sql": true, "machine learning": true}
	if len(g.MissingKeywords)+len(found) != len(testKeywords) {
		t.Errorf("missing %v plus found %d != %d keywords", g.MissingKeywords, len(found), len(testKeywords))
	}
	for _, kw := range g.MissingKeywords {
		if found[kw] {
			t.Errorf("found keyword %q reported missing", kw)
		}
	}
	if g.MissingKeywords[0] != "data science" {
		t.Errorf("expected declaration order, first missing = %q", g.MissingKeywords[0])
	}

	wantSections := []string{"projects", "skills", "certifications", "summary"}
	if strings.Join(g.MissingSections, ",") != strings.Join(wantSections, ",") {
		t.Errorf("MissingSections = %v, want %v", g.MissingSections, wantSections)
	}
}

func TestGapsNeverNil(t *testing.T) {
	c := MustCatalog([]Profile{{Domain: "go", Keywords: []string{"go"}}}, SectionSet{"skills"})

	g, _ := c.Gaps("Skills: Go", "go")
	if g.MissingKeywords == nil || g.MissingSections == nil {
		t.Errorf("expected empty, non-nil slices, got %#v", g)
	}
}
