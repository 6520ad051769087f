package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/watch"
)

var (
	statusJSON  bool
	statusWatch bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active profile",
	Long: `Show which profile the global vkBasalt config belongs to, whether it carries
a tag, and whether vkBasalt is enabled on launch.

With --watch, the status is printed again whenever the config or a profile
changes on disk.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Re-print status when files change")
	rootCmd.AddCommand(statusCmd)
}

// statusInfo is the resolved state of the global config.
type statusInfo struct {
	Active         string `json:"active,omitempty"`
	Tagged         bool   `json:"tagged"`
	EnableOnLaunch bool   `json:"enable_on_launch"`
	GlobalConfig   string `json:"global_config"`
}

func currentStatus() statusInfo {
	active, _ := app.GetActiveProfile()
	return statusInfo{
		Active:         active,
		Tagged:         app.IsGlobalProfileTagged(),
		EnableOnLaunch: app.GetEnableOnLaunchStatus(),
		GlobalConfig:   app.Paths().GlobalConfig,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if err := printStatus(out, currentStatus()); err != nil {
		return err
	}
	if !statusWatch {
		return nil
	}

	paths := app.Paths()
	w, err := watch.New(watch.Config{
		Dirs:   []string{paths.ConfigDir, paths.ProfilesDir},
		Logger: logger,
		OnChange: func(_ context.Context, changed []string) error {
			logger.Debug("files changed", "paths", changed)
			return printStatus(out, currentStatus())
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), hintStyle.Render("Watching for changes, press Ctrl+C to stop."))
	return w.Run(cmd.Context())
}

func printStatus(out io.Writer, s statusInfo) error {
	if statusJSON {
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	active := hintStyle.Render("none")
	if s.Active != "" {
		active = activeStyle.Render(s.Active)
	}
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Active profile:  "), active)
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Tagged:          "), yesNo(s.Tagged))
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("Enable on launch:"), yesNo(s.EnableOnLaunch))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
