package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the global vkBasalt config",
	Long: `Delete ~/.config/vkBasalt/vkBasalt.conf so no profile is active. Profiles
are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Engine().Reset(); err != nil {
			return fmt.Errorf("resetting global config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Global config removed; no profile is active.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
