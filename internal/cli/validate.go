package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
)

var (
	validateVersion string
	validateJSON    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Check a profile against the known vkBasalt options",
	Long: `Check the settings of a profile, or of the global config when no name is
given, against the option catalog: types, ranges, allowed values and the
effects chain. Unknown keys are allowed. Exits non-zero when issues are found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateVersion, "vkbasalt-version", "", "Validate against this vkBasalt release")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	text, err := readConfigText(args)
	if err != nil {
		return err
	}
	c, err := loadCatalog(validateVersion)
	if err != nil {
		return err
	}
	result, err := c.Validate(vkconf.ParseString(text))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if validateJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	} else if result.Valid {
		fmt.Fprintln(out, activeStyle.Render("No issues found."))
	} else {
		for _, is := range result.Issues {
			fmt.Fprintf(out, "  %s %s: %s\n", warnStyle.Render("[FAIL]"), is.Key, is.Message)
		}
	}

	if !result.Valid {
		return fmt.Errorf("%d issue(s) found", len(result.Issues))
	}
	return nil
}
