package ats

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vijay-prabhu/resumeats/internal/critic"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	profiles := []Profile{{Domain: "software", Keywords: testKeywords}}

	for _, in := range []string{"", "   ", "\n\t"} {
		_, err := Analyze(in, profiles, testSections)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyInput", in, err)
		}
	}
}

func TestAnalyzeConfigError(t *testing.T) {
	tests := []struct {
		name     string
		profiles []Profile
		sections SectionSet
	}{
		{"no profiles", nil, testSections},
		{"empty profile", []Profile{{Domain: "x"}}, testSections},
		{"no sections", []Profile{{Domain: "x", Keywords: []string{"go"}}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze("Some resume text.", tt.profiles, tt.sections)
			if !IsConfigError(err) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestAnalyzeSingleProfile(t *testing.T) {
	text := "Summary. Experience: I led a team of 5 engineers building a Python API on AWS. " +
		"I was responsible for testing."

	r, err := Analyze(text, []Profile{{Domain: "software", Keywords: testKeywords}}, testSections)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if r.Domain != "" {
		t.Errorf("Domain = %q, want empty in single-profile mode", r.Domain)
	}
	if r.KeywordMatch != 3 {
		t.Errorf("KeywordMatch = %d, want 3", r.KeywordMatch)
	}
	if r.SectionMatch != 2 {
		t.Errorf("SectionMatch = %d, want 2", r.SectionMatch)
	}
	if len(r.MissingKeywords) != len(testKeywords)-3 {
		t.Errorf("MissingKeywords = %v", r.MissingKeywords)
	}

	// "Summary" trips short + metric, the team sentence is clean,
	// the last sentence trips all four rules.
	if len(r.Feedback) != 6 {
		t.Errorf("expected 6 feedback items, got %d: %+v", len(r.Feedback), r.Feedback)
	}
}

func TestAnalyzeMultiDomain(t *testing.T) {
	catalog := MustCatalog([]Profile{
		{Domain: "frontend", Keywords: []string{"react", "css", "figma"}},
		{Domain: "backend", Keywords: []string{"go", "postgres", "grpc"}},
	}, SectionSet{"experience", "skills"})
	engine := NewEngine(catalog)

	r, err := engine.Analyze("Skills: Go, Postgres, gRPC and a little CSS.")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if r.Domain != "backend" {
		t.Errorf("Domain = %q, want backend", r.Domain)
	}
	if len(r.DomainScores) != 2 {
		t.Errorf("expected 2 domain scores, got %+v", r.DomainScores)
	}
	if r.KeywordMatch != 3 || r.TotalKeywords != 3 {
		t.Errorf("KeywordMatch = %d/%d, want 3/3", r.KeywordMatch, r.TotalKeywords)
	}

	forced, err := engine.AnalyzeDomain("Skills: Go, Postgres, gRPC and a little CSS.", "frontend")
	if err != nil {
		t.Fatalf("AnalyzeDomain failed: %v", err)
	}
	if forced.Domain != "frontend" || forced.KeywordMatch != 1 {
		t.Errorf("forced result = %s/%d, want frontend/1", forced.Domain, forced.KeywordMatch)
	}

	if _, err := engine.AnalyzeDomain("text", "sales"); !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("expected ErrUnknownDomain, got %v", err)
	}
}

func TestReport(t *testing.T) {
	r, err := Analyze("I was responsible for testing.",
		[]Profile{{Domain: "software", Keywords: testKeywords}}, testSections)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	report := r.Report()
	if report.ATSScore != r.Total {
		t.Errorf("ATSScore = %v, want %v", report.ATSScore, r.Total)
	}

	want := []string{
		"Short Sentence: Expand this - 'I was responsible for testing'",
		"Add Metrics: Consider adding numbers - 'I was responsible for testing'",
		"Use Stronger Verbs: Rephrase this - 'I was responsible for testing'",
		"Passive Voice: Consider active voice - 'I was responsible for testing'",
	}
	if strings.Join(report.SentenceFeedback, "\n") != strings.Join(want, "\n") {
		t.Errorf("SentenceFeedback = %q", report.SentenceFeedback)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), `"domain"`) {
		t.Errorf("single-profile report should omit domain: %s", data)
	}
}

func TestResultFeedbackMatchesCritic(t *testing.T) {
	text := "Worked on the billing system. Reduced costs by 30% across 4 regions in the first year."

	r, err := Analyze(text, []Profile{{Domain: "software", Keywords: testKeywords}}, testSections)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	direct := critic.Critique(text)
	if len(direct) != len(r.Feedback) {
		t.Fatalf("feedback length %d != critic %d", len(r.Feedback), len(direct))
	}
	for i := range direct {
		if direct[i] != r.Feedback[i] {
			t.Errorf("feedback[%d] = %+v, want %+v", i, r.Feedback[i], direct[i])
		}
	}
}
