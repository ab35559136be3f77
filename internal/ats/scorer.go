package ats

import (
	"fmt"
	"math"
)

// Score weights. Each component is clamped to its own maximum before the
// total is capped at MaxScore.
const (
	KeywordWeight   = 50.0
	SectionWeight   = 20.0
	FrequencyWeight = 15.0

	// FormattingScore is a fixed credit. No formatting analysis is performed
	// yet; real layout checks are a future extension and should replace this
	// constant rather than drop it.
	FormattingScore = 15.0

	MaxScore = 100.0
)

// ScoreBreakdown holds the components of the composite ATS score
type ScoreBreakdown struct {
	KeywordScore    float64 `json:"keyword_score"`
	SectionScore    float64 `json:"section_score"`
	FrequencyScore  float64 `json:"frequency_score"`
	FormattingScore float64 `json:"formatting_score"`
	Total           float64 `json:"total"`
}

// Scoring is the output of scoring one résumé against one profile
type Scoring struct {
	Breakdown        ScoreBreakdown
	KeywordMatch     int
	SectionMatch     int
	KeywordFrequency int

	// Normalized is the normalized résumé text, kept for the gap report
	Normalized string
}

// Score computes the ATS score of text against the named profile
func (c *Catalog) Score(text, domain string) (*Scoring, error) {
	p, ok := c.lookup(domain)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDomain, domain)
	}
	return c.score(Normalize(text), p), nil
}

func (c *Catalog) score(normalized string, p *compiledProfile) *Scoring {
	keywordMatch := countPresent(normalized, p.keywords)
	sectionMatch := countPresent(normalized, c.sections)

	frequency := 0
	for _, kw := range p.keywords {
		frequency += Count(normalized, kw.match)
	}

	totalKeywords := float64(len(p.keywords))
	b := ScoreBreakdown{
		KeywordScore:    clamp(float64(keywordMatch)/totalKeywords*KeywordWeight, KeywordWeight),
		SectionScore:    clamp(float64(sectionMatch)/float64(len(c.sections))*SectionWeight, SectionWeight),
		FrequencyScore:  clamp(float64(frequency)/totalKeywords*FrequencyWeight, FrequencyWeight),
		FormattingScore: FormattingScore,
	}
	b.Total = round2(math.Min(b.KeywordScore+b.SectionScore+b.FrequencyScore+b.FormattingScore, MaxScore))

	return &Scoring{
		Breakdown:        b,
		KeywordMatch:     keywordMatch,
		SectionMatch:     sectionMatch,
		KeywordFrequency: frequency,
		Normalized:       normalized,
	}
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
