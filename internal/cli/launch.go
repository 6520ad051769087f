package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var launchOptionCmd = &cobra.Command{
	Use:   "launch-option <name>",
	Short: "Print a Steam launch option for a profile",
	Long: `Print a Steam launch option that runs a game with the given profile instead
of the global config, for example:

  VKBASALT_CONFIG_FILE=/home/deck/.config/vkBasalt/profiles/sharp.conf %command%`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		line := app.GetSteamCommand(name)
		if line == "" {
			return fmt.Errorf("invalid profile name %q", name)
		}
		if !app.Store().Exists(name) {
			fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(fmt.Sprintf("warning: profile %q does not exist yet", name)))
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(launchOptionCmd)
}
