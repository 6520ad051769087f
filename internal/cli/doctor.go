package cli

import (
	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/userdata"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the vkBasalt profile setup",
	Long: `Check the vkBasalt config and profiles directories, the tag of each profile
and the state of the global config. With --fix, missing directories are
created, untagged profiles are tagged and the active profile is re-applied so
the global config carries its tag.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return userdata.Check(cmd.OutOrStdout(), app.Paths(), doctorFix)
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Repair what can be repaired")
	rootCmd.AddCommand(doctorCmd)
}
