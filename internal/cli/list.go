package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Long: `List the profiles in the vkBasalt profiles directory. The active profile is
marked with "*"; profiles that do not carry their own tag are flagged.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a profile for display.
type listEntry struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Tagged bool   `json:"tagged"`
}

func runList(cmd *cobra.Command, args []string) error {
	names := app.ListProfiles()
	active, _ := app.GetActiveProfile()
	tags := app.CheckProfileTags()

	entries := make([]listEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, listEntry{
			Name:   name,
			Active: name == active,
			Tagged: tags[name],
		})
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No profiles in %s\n", app.Paths().ProfilesDir)
		return nil
	}
	for _, e := range entries {
		line := "  " + e.Name
		if e.Active {
			line = activeStyle.Render("* " + e.Name)
		}
		if !e.Tagged {
			line += " " + warnStyle.Render("[untagged]")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
