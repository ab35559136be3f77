package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/resumeats/internal/output"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List configured domain profiles and sections",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return err
	}

	return output.Output(outputFmt, &output.ProfileSet{
		Profiles: catalog.Profiles(),
		Sections: catalog.Sections(),
	})
}
