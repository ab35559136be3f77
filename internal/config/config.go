package config

import (
	"time"

	"github.com/vijay-prabhu/resumeats/internal/ats"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Extraction ExtractionConfig `toml:"extraction"`
	Database   DatabaseConfig   `toml:"database"`
	Scoring    ScoringConfig    `toml:"scoring"`
	Profiles   []ats.Profile    `toml:"profiles"`
	Logging    LoggingConfig    `toml:"logging"`
	MCP        MCPConfig        `toml:"mcp"`
}

// ServerConfig contains HTTP upload service settings
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	BodyLimit int    `toml:"body_limit"`
}

// ExtractionConfig contains text extraction settings
type ExtractionConfig struct {
	Mode           string `toml:"mode"` // local or remote
	ServiceURL     string `toml:"service_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxBytes       int64  `toml:"max_bytes"`
}

// Timeout returns the extraction timeout as a duration
func (e ExtractionConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// DatabaseConfig contains analysis history settings
type DatabaseConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ScoringConfig contains settings shared by every profile
type ScoringConfig struct {
	Sections []string `toml:"sections"`
}

// LoggingConfig contains log settings
type LoggingConfig struct {
	Level string `toml:"level"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// DefaultSections are the résumé headers every résumé is checked for
var DefaultSections = []string{
	"education",
	"experience",
	"projects",
	"skills",
	"certifications",
	"summary",
}

// DefaultProfiles returns the built-in keyword profiles
func DefaultProfiles() []ats.Profile {
	return []ats.Profile{
		{
			Domain: "software",
			Keywords: []string{
				"python", "machine learning", "data science", "sql", "react", "django",
				"java", "deep learning", "api", "aws", "tensorflow", "nlp",
			},
		},
		{
			Domain: "data",
			Keywords: []string{
				"sql", "python", "pandas", "spark", "tableau", "statistics",
				"etl", "data warehouse", "airflow", "machine learning",
			},
		},
		{
			Domain: "frontend",
			Keywords: []string{
				"javascript", "typescript", "react", "vue", "css", "html",
				"accessibility", "webpack", "figma", "next js",
			},
		},
		{
			Domain: "devops",
			Keywords: []string{
				"kubernetes", "docker", "terraform", "aws", "ci cd", "linux",
				"prometheus", "ansible", "helm", "observability",
			},
		},
	}
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      5000,
			BodyLimit: 10 * 1024 * 1024,
		},
		Extraction: ExtractionConfig{
			Mode:           "local",
			ServiceURL:     "http://localhost:8650",
			TimeoutSeconds: 30,
			MaxBytes:       10 * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Enabled: false,
			Path:    "~/.local/share/resumeats/history.db",
		},
		Scoring: ScoringConfig{
			Sections: append([]string(nil), DefaultSections...),
		},
		Profiles: DefaultProfiles(),
		Logging: LoggingConfig{
			Level: "info",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
