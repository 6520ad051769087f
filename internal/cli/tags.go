package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsPatch bool

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Check profile tags",
	Long: `Report whether each profile carries the "# vkBasalt Profile: <name>" tag that
identifies it once activated. With --patch, untagged profiles are rewritten
to carry their tag.`,
	Args: cobra.NoArgs,
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsPatch, "patch", false, "Tag every untagged profile")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if tagsPatch {
		if app.PatchUntaggedProfiles() {
			fmt.Fprintln(out, "Tagged untagged profiles.")
		} else {
			fmt.Fprintln(out, "Nothing to patch.")
		}
	}

	tags := app.CheckProfileTags()
	for _, name := range app.ListProfiles() {
		if tags[name] {
			fmt.Fprintf(out, "  [ OK ] %s\n", name)
		} else {
			fmt.Fprintf(out, "  %s %s\n", warnStyle.Render("[MISS]"), name)
		}
	}
	return nil
}
