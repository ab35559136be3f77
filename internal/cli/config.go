package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumeats/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

var configEffective bool

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().BoolVar(&configEffective, "effective", false, "Show the merged configuration including defaults")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configFile := configPath
	configDir := filepath.Dir(configFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'resumeats config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit [[profiles]] to match the roles you are applying for")
	fmt.Println("  2. Run 'resumeats analyze resume.pdf' to score a résumé")
	fmt.Println("  3. Set database.enabled = true to keep a history of scores")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if configEffective {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found; built-in defaults are in use.")
			fmt.Println("Run 'resumeats config init' to create one, or 'resumeats config show --effective' to see the defaults.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

// defaultConfig is written by 'config init'. It must parse to the same
// values as config.Default.
var defaultConfig = `# resumeats configuration

[server]
host = "127.0.0.1"
port = 5000                 # RESUMEATS_PORT overrides
body_limit = 10485760       # bytes

[extraction]
mode = "local"              # local or remote
service_url = "http://localhost:8650"
timeout_seconds = 30
max_bytes = 10485760

[database]
enabled = false             # record every analysis
path = "~/.local/share/resumeats/history.db"

[logging]
level = "info"              # debug, info, warn, error

[mcp]
enabled = true
transport = "stdio"

[scoring]
# Headers every résumé is checked for
sections = [` + tomlList(config.DefaultSections) + `]

# Keyword profiles. With more than one profile the résumé is classified
# into the profile with the most keyword matches; ties go to the first.
` + tomlProfiles()
