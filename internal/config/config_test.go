package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vijay-prabhu/resumeats/internal/ats"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 5000 {
		t.Errorf("expected Port=5000, got %d", cfg.Server.Port)
	}

	if cfg.Extraction.Mode != "local" {
		t.Errorf("expected Mode=local, got %s", cfg.Extraction.Mode)
	}

	if len(cfg.Scoring.Sections) != 6 {
		t.Errorf("expected 6 sections, got %d", len(cfg.Scoring.Sections))
	}

	if cfg.Profiles[0].Domain != "software" || len(cfg.Profiles[0].Keywords) != 12 {
		t.Errorf("unexpected first profile %+v", cfg.Profiles[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid port",
			modify: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid extraction mode",
			modify: func(c *Config) {
				c.Extraction.Mode = "ocr"
			},
			wantErr: true,
		},
		{
			name: "remote mode without url",
			modify: func(c *Config) {
				c.Extraction.Mode = "remote"
				c.Extraction.ServiceURL = ""
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
		{
			name: "no profiles",
			modify: func(c *Config) {
				c.Profiles = nil
			},
			wantErr: true,
		},
		{
			name: "no sections",
			modify: func(c *Config) {
				c.Scoring.Sections = nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateScoringIsConfigError(t *testing.T) {
	cfg := Default()
	cfg.Profiles = []ats.Profile{{Domain: "empty"}}

	err := cfg.Validate()
	var ce *ats.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ats.ConfigError in %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	data := `
[server]
port = 8080

[scoring]
sections = ["experience", "skills"]

[[profiles]]
domain = "backend"
keywords = ["go", "postgres"]

[[profiles]]
domain = "frontend"
keywords = ["react"]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected default host to survive, got %q", cfg.Server.Host)
	}
	if len(cfg.Profiles) != 2 || cfg.Profiles[0].Domain != "backend" {
		t.Errorf("expected file profiles to replace defaults, got %+v", cfg.Profiles)
	}
	if len(cfg.Scoring.Sections) != 2 {
		t.Errorf("expected 2 sections, got %v", cfg.Scoring.Sections)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if !catalog.MultiDomain() {
		t.Error("expected multi-domain catalog")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Profiles) != len(DefaultProfiles()) {
		t.Errorf("expected default profiles, got %d", len(cfg.Profiles))
	}
}

func TestLoadRejectsBadScoring(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[[profiles]]
domain = "empty"
keywords = []
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(path)
	if !ats.IsConfigError(err) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestPortFromEnv(t *testing.T) {
	t.Setenv(EnvPort, "9090")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected Port=9090, got %d", cfg.Server.Port)
	}
	if cfg.Address() != "127.0.0.1:9090" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestExtractionTimeout(t *testing.T) {
	cfg := Default()

	if got := cfg.Extraction.Timeout().Seconds(); got != 30 {
		t.Errorf("Timeout() = %v seconds, want 30", got)
	}
}
