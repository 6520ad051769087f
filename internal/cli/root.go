package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/backend"
	"github.com/vkbasalt-tools/vkprofiles/internal/branding"
	"github.com/vkbasalt-tools/vkprofiles/internal/config"
	"github.com/vkbasalt-tools/vkprofiles/internal/logging"
	"github.com/vkbasalt-tools/vkprofiles/internal/userdata"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagLogLevel  string
	flagConfigDir string
)

// app is the backend built for the running command.
var (
	app    *backend.Backend
	logger *log.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "vkBasalt config directory (default ~/.config/vkBasalt)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` switches vkBasalt between named configuration profiles.

Profiles live in ~/.config/vkBasalt/profiles/<name>.conf. Activating a profile
copies it into ~/.config/vkBasalt/vkBasalt.conf, the file vkBasalt reads at
startup, and tags it so the active profile can be identified later.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// setup loads the tool config, builds the logger, and resolves the vkBasalt
// layout for the command about to run.
func setup(cmd *cobra.Command) error {
	config.Load()

	level := flagLogLevel
	if level == "" {
		level = config.Get(config.KeyLogLevel)
	}
	l, err := logging.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	logger = l

	var paths userdata.Paths
	if flagConfigDir != "" {
		paths = userdata.NewPaths(flagConfigDir)
	} else {
		paths, err = userdata.ResolvePaths()
		if err != nil {
			return fmt.Errorf("resolving vkBasalt config directory: %w", err)
		}
	}
	logger.Debug("resolved layout", "config_dir", paths.ConfigDir, "profiles_dir", paths.ProfilesDir)

	app = backend.New(paths, logger)
	return nil
}

func versionString() string {
	if buildVersion == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}
