package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/activation"
	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
	"go.yaml.in/yaml/v3"
)

var (
	showParsed bool
	showJSON   bool
	showYAML   bool
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a profile or the global config",
	Long: `Print the raw text of a profile, or of the global config when no name is
given. With --parsed the settings are listed with their inferred types;
--json and --yaml print the typed settings in that format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showParsed, "parsed", false, "List settings with their types")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print typed settings as JSON")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Print typed settings as YAML")
	showCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	text, err := readConfigText(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case showJSON:
		data, err := json.MarshalIndent(vkconf.ParseString(text).Map(), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case showYAML:
		data, err := yaml.Marshal(vkconf.ParseString(text).Map())
		if err != nil {
			return fmt.Errorf("encoding settings: %w", err)
		}
		fmt.Fprint(out, string(data))
	case showParsed:
		return printSettings(out, vkconf.ParseString(text))
	default:
		fmt.Fprint(out, text)
	}
	return nil
}

func readConfigText(args []string) (string, error) {
	if len(args) == 0 {
		text, err := app.Engine().GlobalConfig()
		if errors.Is(err, activation.ErrNoGlobalConfig) {
			return "", fmt.Errorf("no global config at %s", app.Paths().GlobalConfig)
		}
		return text, err
	}
	text, err := app.Store().Read(args[0])
	if errors.Is(err, profile.ErrNotFound) {
		return "", fmt.Errorf("profile %q not found in %s", args[0], app.Paths().ProfilesDir)
	}
	return text, err
}

func printSettings(out io.Writer, s *vkconf.Settings) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tVALUE")
	for _, key := range s.Keys() {
		v, _ := s.Get(key)
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, v.Kind(), v)
	}
	return w.Flush()
}
