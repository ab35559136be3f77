package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const analysisColumns = `
	id, source, domain, ats_score, keyword_score, section_score, frequency_score,
	formatting_score, keyword_match, section_match, missing_keywords,
	missing_sections, feedback_count, created_at`

// CreateAnalysis inserts a new analysis record
func (db *DB) CreateAnalysis(ctx context.Context, a *Analysis) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	missingKeywords, err := encodeList(a.MissingKeywords)
	if err != nil {
		return err
	}
	missingSections, err := encodeList(a.MissingSections)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.Source, NullString(a.Domain), a.Score.Total, a.Score.KeywordScore,
		a.Score.SectionScore, a.Score.FrequencyScore, a.Score.FormattingScore,
		a.KeywordMatch, a.SectionMatch, missingKeywords, missingSections,
		a.FeedbackCount, a.CreatedAt,
	)
	return err
}

// GetAnalysis retrieves an analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	row := db.QueryRowContext(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnalyses retrieves analyses, newest first
func (db *DB) ListAnalyses(ctx context.Context, opts ListOptions) ([]Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE 1=1`
	args := []interface{}{}

	if opts.Domain != nil {
		query += " AND LOWER(domain) = LOWER(?)"
		args = append(args, *opts.Domain)
	}
	if opts.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, *opts.Since)
	}

	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	return analyses, rows.Err()
}

// DeleteAnalysis removes an analysis
func (db *DB) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// GetStats returns aggregate statistics, optionally since a point in time
func (db *DB) GetStats(ctx context.Context, since *time.Time) (*Stats, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(ats_score), 0), COALESCE(MAX(ats_score), 0) FROM analyses`
	args := []interface{}{}
	if since != nil {
		query += " WHERE created_at >= ?"
		args = append(args, *since)
	}

	stats := &Stats{}
	if err := db.QueryRowContext(ctx, query, args...).Scan(&stats.TotalAnalyses, &stats.AverageScore, &stats.BestScore); err != nil {
		return nil, err
	}

	if stats.TotalAnalyses > 0 {
		latest, err := db.ListAnalyses(ctx, ListOptions{Since: since, Limit: 1})
		if err != nil {
			return nil, err
		}
		if len(latest) > 0 {
			stats.LatestScore = latest[0].Score.Total
		}
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(s scanner) (*Analysis, error) {
	a := &Analysis{}
	var domain sql.NullString
	var missingKeywords, missingSections string

	err := s.Scan(
		&a.ID, &a.Source, &domain, &a.Score.Total, &a.Score.KeywordScore,
		&a.Score.SectionScore, &a.Score.FrequencyScore, &a.Score.FormattingScore,
		&a.KeywordMatch, &a.SectionMatch, &missingKeywords, &missingSections,
		&a.FeedbackCount, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Domain = StringPtr(domain)
	if a.MissingKeywords, err = decodeList(missingKeywords); err != nil {
		return nil, err
	}
	if a.MissingSections, err = decodeList(missingSections); err != nil {
		return nil, err
	}
	return a, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(data string) ([]string, error) {
	out := []string{}
	if data == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return out, nil
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
