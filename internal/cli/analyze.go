package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumeats/internal/ats"
	"github.com/vijay-prabhu/resumeats/internal/database"
	"github.com/vijay-prabhu/resumeats/internal/extract"
	"github.com/vijay-prabhu/resumeats/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Score one or more résumés",
	Long: `Extract text from each résumé and score it against the configured
keyword profiles.

PDF, DOCX and plain-text files are supported. Use "-" to read plain text
from stdin.

Examples:
  resumeats analyze resume.pdf                 # Score and classify
  resumeats analyze resume.docx --domain data  # Score against one profile
  resumeats analyze *.pdf -o json              # Batch, JSON output
  resumeats analyze resume.pdf --save          # Record in history`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeDomain string
	analyzeSave   bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeDomain, "domain", "d", "", "Score against this profile instead of classifying")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Record the analysis in history")
}

// fileReport pairs a report with the document it came from
type fileReport struct {
	File string `json:"file"`
	ats.Report
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	extractor := extract.New(cfg.Extraction)

	db, err := openHistory(cfg, analyzeSave)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	term := NewTerminal()
	var reports []fileReport
	var failed int

	for i, path := range args {
		if len(args) > 1 {
			term.Progress(i+1, len(args), filepath.Base(path))
		}

		result, err := analyzeFile(ctx, engine, extractor, path, cfg.Extraction.MaxBytes)
		if err != nil {
			term.Done()
			if len(args) == 1 {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("✗"), path, err)
			failed++
			continue
		}

		if db != nil {
			a := database.FromResult(filepath.Base(path), result)
			if err := db.CreateAnalysis(ctx, a); err != nil {
				return fmt.Errorf("failed to save analysis: %w", err)
			}
			log.Debug("analysis saved", "id", a.ID, "file", path)
		}

		if outputFmt == "json" {
			reports = append(reports, fileReport{File: path, Report: result.Report()})
			continue
		}

		term.Done()
		if len(args) > 1 {
			fmt.Println(color.New(color.Bold, color.Underline).Sprint(path))
		}
		if err := output.Output(outputFmt, result); err != nil {
			return err
		}
		if len(args) > 1 {
			fmt.Println()
		}
	}
	term.Done()

	if outputFmt == "json" {
		switch {
		case len(args) == 1 && len(reports) == 1:
			if err := output.JSON(reports[0].Report); err != nil {
				return err
			}
		default:
			if reports == nil {
				reports = []fileReport{}
			}
			if err := output.JSON(reports); err != nil {
				return err
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}

func analyzeFile(ctx context.Context, engine *ats.Engine, extractor extract.Extractor, path string, maxBytes int64) (*ats.Result, error) {
	doc, err := readDocument(path, maxBytes)
	if err != nil {
		return nil, err
	}

	text, err := extractor.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	slog.Debug("text extracted", "file", path, "chars", len(text))
	return engine.AnalyzeDomain(text, analyzeDomain)
}

func readDocument(path string, maxBytes int64) (extract.Document, error) {
	if path == "-" {
		doc, err := extract.ReadDocument(os.Stdin, "stdin", maxBytes)
		if err != nil {
			return doc, err
		}
		doc.ContentType = extract.TypePlain
		return doc, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return extract.Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return extract.ReadDocument(f, filepath.Base(path), maxBytes)
}
