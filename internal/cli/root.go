package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumeats/internal/ats"
	"github.com/vijay-prabhu/resumeats/internal/config"
	"github.com/vijay-prabhu/resumeats/internal/database"
	"github.com/vijay-prabhu/resumeats/internal/logger"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string
	noColor    bool
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "resumeats",
	Short: "Score résumés the way an applicant tracking system would",
	Long: `resumeats estimates how well a résumé would fare in an applicant
tracking system (ATS) keyword screen.

It provides:
  - A 0-100 score built from keyword, section and frequency matches
  - Missing keywords and sections for the matched domain profile
  - Sentence-level feedback on short, vague or passive sentences
  - An HTTP upload service and an MCP server for assistant integration`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: $RESUMEATS_CONFIG or ~/.config/resumeats/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if noColor {
		color.NoColor = true
	}

	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = p
	}
}

// loadConfig loads the configuration and applies command-line overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger. Diagnostics go to stderr so that
// stdout stays clean for command output.
func newLogger(cfg *config.Config) *slog.Logger {
	return logger.Setup(os.Stderr, cfg.Logging.Level, NewTerminal().UseColor)
}

// newEngine builds the analyzer from the configured profiles
func newEngine(cfg *config.Config) (*ats.Engine, error) {
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return ats.NewEngine(catalog), nil
}

// openHistory opens the history store. It returns nil when history is
// disabled and force is false.
func openHistory(cfg *config.Config, force bool) (*database.DB, error) {
	if !cfg.Database.Enabled && !force {
		return nil, nil
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("resumeats %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
