package ats

import (
	"fmt"
	"strings"

	"github.com/vijay-prabhu/resumeats/internal/critic"
)

// Result is the full analysis of one résumé
type Result struct {
	// Domain is set only when the catalog holds several profiles and the
	// profile was chosen by classification or requested explicitly.
	Domain       string        `json:"domain,omitempty"`
	DomainScores []DomainScore `json:"domain_scores,omitempty"`

	ScoreBreakdown
	KeywordMatch     int `json:"keyword_match"`
	SectionMatch     int `json:"section_match"`
	KeywordFrequency int `json:"keyword_frequency"`
	TotalKeywords    int `json:"total_keywords"`
	TotalSections    int `json:"total_sections"`

	Gaps
	Feedback []critic.FeedbackItem `json:"feedback"`
}

// Report is the flat record handed to upload clients
type Report struct {
	Domain           string   `json:"domain,omitempty"`
	ATSScore         float64  `json:"ats_score"`
	KeywordMatch     int      `json:"keyword_match"`
	SectionMatch     int      `json:"section_match"`
	MissingKeywords  []string `json:"missing_keywords"`
	MissingSections  []string `json:"missing_sections"`
	SentenceFeedback []string `json:"sentence_feedback"`
}

// Report flattens the result for serialization
func (r *Result) Report() Report {
	return Report{
		Domain:           r.Domain,
		ATSScore:         r.Total,
		KeywordMatch:     r.KeywordMatch,
		SectionMatch:     r.SectionMatch,
		MissingKeywords:  r.MissingKeywords,
		MissingSections:  r.MissingSections,
		SentenceFeedback: critic.Messages(r.Feedback),
	}
}

// Analyze validates the configuration and analyzes rawText in one call.
// Long-running callers should build an Engine once instead.
func Analyze(rawText string, profiles []Profile, sections SectionSet) (*Result, error) {
	catalog, err := NewCatalog(profiles, sections)
	if err != nil {
		return nil, err
	}
	return NewEngine(catalog).Analyze(rawText)
}

// Engine analyzes résumés against a fixed catalog. It holds no per-request
// state and is safe for concurrent use.
type Engine struct {
	catalog *Catalog
}

// NewEngine creates an engine for a validated catalog
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Catalog returns the engine's configuration
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Analyze scores rawText, choosing the profile by classification when more
// than one is configured.
func (e *Engine) Analyze(rawText string) (*Result, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	normalized := Normalize(rawText)
	p, scores := e.catalog.classify(normalized)

	result := e.build(rawText, normalized, p)
	if e.catalog.MultiDomain() {
		result.Domain = p.domain
		result.DomainScores = scores
	}
	return result, nil
}

// AnalyzeDomain scores rawText against an explicitly named profile
func (e *Engine) AnalyzeDomain(rawText, domain string) (*Result, error) {
	if domain == "" {
		return e.Analyze(rawText)
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyInput
	}

	p, ok := e.catalog.lookup(domain)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}

	normalized := Normalize(rawText)
	result := e.build(rawText, normalized, p)
	if e.catalog.MultiDomain() {
		result.Domain = p.domain
	}
	return result, nil
}

func (e *Engine) build(rawText, normalized string, p *compiledProfile) *Result {
	s := e.catalog.score(normalized, p)

	return &Result{
		ScoreBreakdown:   s.Breakdown,
		KeywordMatch:     s.KeywordMatch,
		SectionMatch:     s.SectionMatch,
		KeywordFrequency: s.KeywordFrequency,
		TotalKeywords:    len(p.keywords),
		TotalSections:    len(e.catalog.sections),
		Gaps:             e.catalog.gaps(s.Normalized, p),
		Feedback:         critic.Critique(rawText),
	}
}
