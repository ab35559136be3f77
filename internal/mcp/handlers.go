package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vijay-prabhu/resumeats/internal/ats"
	"github.com/vijay-prabhu/resumeats/internal/critic"
	"github.com/vijay-prabhu/resumeats/internal/database"
)

// ErrHistoryDisabled is returned by history tools when no store is configured
var ErrHistoryDisabled = errors.New("history is disabled; set database.enabled = true in the config")

func (s *Server) registerHandlers() {
	s.handlers["analyze_resume"] = s.handleAnalyzeResume
	s.handlers["list_profiles"] = s.handleListProfiles
	s.handlers["list_history"] = s.handleListHistory
	s.handlers["get_analysis"] = s.handleGetAnalysis
}

type analyzeParams struct {
	Text   string `json:"text"`
	Domain string `json:"domain"`
	Source string `json:"source"`
	Save   bool   `json:"save"`
}

type analyzeResult struct {
	ats.Report
	DomainScores    []ats.DomainScore       `json:"domain_scores,omitempty"`
	FeedbackSummary map[critic.Category]int `json:"feedback_summary"`
	AnalysisID      string                  `json:"analysis_id,omitempty"`
}

func (s *Server) handleAnalyzeResume(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p analyzeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if p.Save && s.db == nil {
		return nil, ErrHistoryDisabled
	}

	result, err := s.engine.AnalyzeDomain(p.Text, p.Domain)
	if err != nil {
		return nil, err
	}

	out := analyzeResult{
		Report:          result.Report(),
		DomainScores:    result.DomainScores,
		FeedbackSummary: critic.Summary(result.Feedback),
	}

	if p.Save {
		source := p.Source
		if source == "" {
			source = "mcp"
		}
		a := database.FromResult(source, result)
		if err := s.db.CreateAnalysis(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to save analysis: %w", err)
		}
		out.AnalysisID = a.ID
	}

	return out, nil
}

type profilesResult struct {
	Profiles []ats.Profile `json:"profiles"`
	Sections []string      `json:"sections"`
}

func (s *Server) handleListProfiles(ctx context.Context, params json.RawMessage) (interface{}, error) {
	catalog := s.engine.Catalog()
	return profilesResult{
		Profiles: catalog.Profiles(),
		Sections: catalog.Sections(),
	}, nil
}

type listHistoryParams struct {
	Domain    string `json:"domain"`
	SinceDays int    `json:"since_days"`
	Limit     int    `json:"limit"`
}

func (s *Server) handleListHistory(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if s.db == nil {
		return nil, ErrHistoryDisabled
	}

	var p listHistoryParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, fmt.Errorf("invalid parameters: %w", err)
		}
	}

	opts := database.ListOptions{Limit: 20}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}
	if p.Domain != "" {
		opts.Domain = &p.Domain
	}
	if p.SinceDays > 0 {
		since := time.Now().AddDate(0, 0, -p.SinceDays)
		opts.Since = &since
	}

	analyses, err := s.db.ListAnalyses(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if analyses == nil {
		analyses = []database.Analysis{}
	}

	return analyses, nil
}

type getAnalysisParams struct {
	ID string `json:"id"`
}

func (s *Server) handleGetAnalysis(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if s.db == nil {
		return nil, ErrHistoryDisabled
	}

	var p getAnalysisParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	a, err := s.db.GetAnalysis(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("analysis not found: %s", p.ID)
	}

	return a, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case "resumeats://profiles":
		return s.getResourceProfiles(), nil
	case "resumeats://history":
		return s.getResourceHistory(ctx)
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceProfiles() string {
	catalog := s.engine.Catalog()

	var b strings.Builder
	b.WriteString("Scoring Profiles\n================\n\n")
	for _, p := range catalog.Profiles() {
		fmt.Fprintf(&b, "%s (%d keywords):\n  %s\n\n", p.Domain, len(p.Keywords), strings.Join(p.Keywords, ", "))
	}
	fmt.Fprintf(&b, "Sections checked:\n  %s\n", strings.Join(catalog.Sections(), ", "))

	return b.String()
}

func (s *Server) getResourceHistory(ctx context.Context) (string, error) {
	result := "Recent Analyses\n===============\n\n"

	if s.db == nil {
		return result + "History is disabled.\n", nil
	}

	stats, err := s.db.GetStats(ctx, nil)
	if err != nil {
		return "", err
	}
	if stats.TotalAnalyses == 0 {
		return result + "No analyses yet. Run 'resumeats analyze --save' to record one.\n", nil
	}

	result += fmt.Sprintf("Total: %d | Average: %.2f | Best: %.2f | Latest: %.2f\n\n",
		stats.TotalAnalyses, stats.AverageScore, stats.BestScore, stats.LatestScore)

	analyses, err := s.db.ListAnalyses(ctx, database.ListOptions{Limit: 10})
	if err != nil {
		return "", err
	}

	for _, a := range analyses {
		domain := "-"
		if a.Domain != nil {
			domain = *a.Domain
		}
		result += fmt.Sprintf("- %s | %s | %s | %.2f | %d missing\n",
			a.CreatedAt.Format("2006-01-02 15:04"), a.Source, domain, a.Score.Total,
			len(a.MissingKeywords)+len(a.MissingSections))
	}

	return result, nil
}
