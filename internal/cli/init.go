package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/userdata"
)

var initImportAs string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the profiles directory",
	Long: `Create ~/.config/vkBasalt/profiles. If it holds no profiles yet and a global
vkBasalt.conf exists, that config is saved as a profile (named by
--import-as) so it is not lost when another profile is activated. Pass
--import-as "" to skip the import.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Initializing vkBasalt profiles:")
		if err := userdata.InitLayout(out, app.Paths(), initImportAs); err != nil {
			return fmt.Errorf("init: %w", err)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initImportAs, "import-as", userdata.DefaultImportName, "Profile name for an imported global config")
	rootCmd.AddCommand(initCmd)
}
