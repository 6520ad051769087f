package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
)

var useCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Activate a profile",
	Long: `Make a profile the active vkBasalt configuration. The profile is tagged if
needed and copied over the global config.

Without a name, an interactive picker lists the available profiles.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		picked, err := pickProfile()
		if err != nil {
			return err
		}
		name = picked
	}

	if err := app.Engine().Activate(name); err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return fmt.Errorf("profile %q not found in %s", name, app.Paths().ProfilesDir)
		}
		return fmt.Errorf("activating %q: %w", name, err)
	}
	logger.Info("activated profile", "profile", name)
	fmt.Fprintf(cmd.OutOrStdout(), "Activated %s\n", activeStyle.Render(name))
	return nil
}

// pickProfile prompts for a profile when running in a terminal.
func pickProfile() (string, error) {
	if !isInteractive() {
		return "", errors.New("profile name required (no terminal for interactive selection)")
	}
	names := app.ListProfiles()
	if len(names) == 0 {
		return "", fmt.Errorf("no profiles in %s", app.Paths().ProfilesDir)
	}

	current, _ := app.GetActiveProfile()
	opts := make([]huh.Option[string], len(names))
	for i, n := range names {
		label := n
		if n == current {
			label += " (active)"
		}
		opts[i] = huh.NewOption(label, n)
	}

	picked := current
	sel := huh.NewSelect[string]().
		Title("Activate profile").
		Options(opts...).
		Value(&picked)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", fmt.Errorf("selecting profile: %w", err)
	}
	return picked, nil
}
