package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
)

var enableOnLaunchCmd = &cobra.Command{
	Use:   "enable-on-launch [on|off]",
	Short: "Show or set whether vkBasalt starts enabled",
	Long: `Without an argument, print the enableOnLaunch setting of the global config.
With on or off, rewrite it.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, onOff(app.GetEnableOnLaunchStatus()))
			return nil
		}

		enabled, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		if err := app.Engine().SetEnableOnLaunch(enabled); err != nil {
			return fmt.Errorf("setting enableOnLaunch: %w", err)
		}
		fmt.Fprintf(out, "enableOnLaunch = %s\n", vkconf.FormatBool(enabled))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enableOnLaunchCmd)
}

func parseSwitch(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "yes", "1":
		return true, nil
	case "off", "no", "0":
		return false, nil
	}
	if b, ok := vkconf.ParseBool(arg); ok {
		return b, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
