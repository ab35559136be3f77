package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vijay-prabhu/resumeats/internal/ats"
)

// Environment overrides
const (
	EnvConfigPath = "RESUMEATS_CONFIG"
	EnvPort       = "RESUMEATS_PORT"
)

// Load reads and parses the configuration file. A missing file is not an
// error: the defaults are used.
func Load(path string) (*Config, error) {
	// Expand path
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := Default()

	// Read file
	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Expand paths in config
	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML data over cfg. Profiles given in the file replace the
// built-in profiles entirely.
func Parse(data []byte, cfg *Config) error {
	var probe struct {
		Profiles []ats.Profile `toml:"profiles"`
		Scoring  struct {
			Sections []string `toml:"sections"`
		} `toml:"scoring"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Reset list fields so file values replace defaults instead of merging
	if probe.Profiles != nil {
		cfg.Profiles = nil
	}
	if probe.Scoring.Sections != nil {
		cfg.Scoring.Sections = nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// DefaultPath returns the config path, honoring RESUMEATS_CONFIG
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "resumeats", "config.toml"), nil
}

func (c *Config) applyEnv() error {
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, p, err)
		}
		c.Server.Port = port
	}
	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid. Scoring problems are
// reported as an *ats.ConfigError inside the joined error.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, errors.New("server.port must be between 1 and 65535"))
	}
	if c.Server.BodyLimit < 1 {
		errs = append(errs, errors.New("server.body_limit must be positive"))
	}

	// Extraction validation
	switch c.Extraction.Mode {
	case "local":
	case "remote":
		if c.Extraction.ServiceURL == "" {
			errs = append(errs, errors.New("extraction.service_url is required in remote mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("extraction.mode must be 'local' or 'remote', got '%s'", c.Extraction.Mode))
	}
	if c.Extraction.TimeoutSeconds < 1 {
		errs = append(errs, errors.New("extraction.timeout_seconds must be at least 1"))
	}
	if c.Extraction.MaxBytes < 1 {
		errs = append(errs, errors.New("extraction.max_bytes must be positive"))
	}

	// Database validation
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got '%s'", c.Logging.Level))
	}

	// MCP validation
	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	// Scoring validation
	if _, err := c.Catalog(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Catalog builds the immutable scoring catalog from the configured profiles
// and sections.
func (c *Config) Catalog() (*ats.Catalog, error) {
	return ats.NewCatalog(c.Profiles, ats.SectionSet(c.Scoring.Sections))
}

// Address returns the host:port the upload service listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
