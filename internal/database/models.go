package database

import (
	"time"

	"github.com/vijay-prabhu/resumeats/internal/ats"
)

// Analysis is the stored summary of one résumé analysis
type Analysis struct {
	ID              string             `json:"id"`
	Source          string             `json:"source"`
	Domain          *string            `json:"domain,omitempty"`
	Score           ats.ScoreBreakdown `json:"score"`
	KeywordMatch    int                `json:"keyword_match"`
	SectionMatch    int                `json:"section_match"`
	MissingKeywords []string           `json:"missing_keywords"`
	MissingSections []string           `json:"missing_sections"`
	FeedbackCount   int                `json:"feedback_count"`
	CreatedAt       time.Time          `json:"created_at"`
}

// FromResult builds a history record for result. source names the document.
func FromResult(source string, r *ats.Result) *Analysis {
	a := &Analysis{
		Source:          source,
		Score:           r.ScoreBreakdown,
		KeywordMatch:    r.KeywordMatch,
		SectionMatch:    r.SectionMatch,
		MissingKeywords: r.MissingKeywords,
		MissingSections: r.MissingSections,
		FeedbackCount:   len(r.Feedback),
	}
	if r.Domain != "" {
		domain := r.Domain
		a.Domain = &domain
	}
	return a
}

// ListOptions contains options for listing analyses
type ListOptions struct {
	Domain *string
	Since  *time.Time
	Limit  int
	Offset int
}

// Stats represents aggregate history statistics
type Stats struct {
	TotalAnalyses int     `json:"total_analyses"`
	AverageScore  float64 `json:"average_score"`
	BestScore     float64 `json:"best_score"`
	LatestScore   float64 `json:"latest_score"`
}
