package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumeats/internal/database"
	"github.com/vijay-prabhu/resumeats/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past analyses",
	Long: `List analyses recorded with --save or with database.enabled = true.

Examples:
  resumeats history                      # Most recent analyses
  resumeats history --domain software    # One domain only
  resumeats history --since 2w           # Last two weeks
  resumeats history show 1a2b3c4d        # Full record
  resumeats history export --format csv  # Spreadsheet export`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate score statistics",
	RunE:  runHistoryStats,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analyses to CSV or JSON",
	RunE:  runHistoryExport,
}

var (
	historyLimit  int
	historyDomain string
	historySince  string
	exportFormat  string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyExportCmd)

	historyCmd.PersistentFlags().StringVar(&historyDomain, "domain", "", "Filter by domain")
	historyCmd.PersistentFlags().StringVar(&historySince, "since", "", "Filter by time (e.g., 7d, 2w, 1m)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of results")
	historyExportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
}

func openHistoryStore() (*database.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openHistory(cfg, true)
}

func historyOptions(limit int) (database.ListOptions, error) {
	opts := database.ListOptions{Limit: limit}
	if historyDomain != "" {
		opts.Domain = &historyDomain
	}
	if historySince != "" {
		since, err := parseDuration(historySince)
		if err != nil {
			return opts, fmt.Errorf("invalid duration: %w", err)
		}
		sinceTime := time.Now().Add(-since)
		opts.Since = &sinceTime
	}
	return opts, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer db.Close()

	opts, err := historyOptions(historyLimit)
	if err != nil {
		return err
	}

	analyses, err := db.ListAnalyses(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}
	if analyses == nil {
		analyses = []database.Analysis{}
	}

	return output.Output(outputFmt, analyses)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := db.GetAnalysis(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	if a == nil {
		// Accept the short IDs printed by the list table
		analyses, err := db.ListAnalyses(ctx, database.ListOptions{})
		if err != nil {
			return fmt.Errorf("failed to list analyses: %w", err)
		}
		for i := range analyses {
			if strings.HasPrefix(analyses[i].ID, args[0]) {
				a = &analyses[i]
				break
			}
		}
	}

	if a == nil {
		return fmt.Errorf("analysis not found: %s", args[0])
	}

	return output.Output(outputFmt, a)
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	db, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var since *time.Time
	if historySince != "" {
		d, err := parseDuration(historySince)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		t := time.Now().Add(-d)
		since = &t
	}

	stats, err := db.GetStats(cmd.Context(), since)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return output.Output(outputFmt, stats)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.DeleteAnalysis(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted analysis %s\n", args[0])
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	db, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer db.Close()

	opts, err := historyOptions(0)
	if err != nil {
		return err
	}

	analyses, err := db.ListAnalyses(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	switch exportFormat {
	case "csv":
		return exportCSV(analyses)
	case "json":
		if analyses == nil {
			analyses = []database.Analysis{}
		}
		return output.JSON(analyses)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}

func exportCSV(analyses []database.Analysis) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{
		"id", "source", "domain", "ats_score", "keyword_score", "section_score",
		"frequency_score", "formatting_score", "keyword_match", "section_match",
		"missing_keywords", "missing_sections", "feedback_count", "created_at",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range analyses {
		domain := ""
		if a.Domain != nil {
			domain = *a.Domain
		}
		record := []string{
			a.ID,
			a.Source,
			domain,
			formatFloat(a.Score.Total),
			formatFloat(a.Score.KeywordScore),
			formatFloat(a.Score.SectionScore),
			formatFloat(a.Score.FrequencyScore),
			formatFloat(a.Score.FormattingScore),
			strconv.Itoa(a.KeywordMatch),
			strconv.Itoa(a.SectionMatch),
			strings.Join(a.MissingKeywords, "; "),
			strings.Join(a.MissingSections, "; "),
			strconv.Itoa(a.FeedbackCount),
			a.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseDuration parses a human-readable duration like "7d", "2w", "1m"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration format")
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid duration value")
	}

	switch unit {
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %c (use d, w, or m)", unit)
	}
}
