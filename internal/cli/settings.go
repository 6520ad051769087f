package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vkbasalt-tools/vkprofiles/internal/config"
	"github.com/vkbasalt-tools/vkprofiles/internal/settings"
)

var (
	settingsEffect  string
	settingsVersion string
	settingsSchema  bool
	settingsJSON    bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Describe the options vkBasalt understands",
	Long: `List the global and per-effect vkBasalt options with their types, ranges and
defaults. --vkbasalt-version (or the vkbasalt.version setting) hides options
newer than the installed release. --schema prints the JSON Schema used by
'validate'.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&settingsEffect, "effect", "", "Only show options of this effect (cas, dls, fxaa, smaa, lut)")
	settingsCmd.Flags().StringVar(&settingsVersion, "vkbasalt-version", "", "Filter options by vkBasalt release")
	settingsCmd.Flags().BoolVar(&settingsSchema, "schema", false, "Print the JSON Schema")
	settingsCmd.Flags().BoolVar(&settingsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(settingsCmd)
}

// loadCatalog returns the catalog filtered to the requested vkBasalt release.
func loadCatalog(version string) (*settings.Catalog, error) {
	c, err := settings.Load()
	if err != nil {
		return nil, err
	}
	if version == "" {
		version = config.Get(config.KeyVkBasaltVersion)
	}
	if version == "" {
		return c, nil
	}
	return c.ForVersion(version)
}

func runSettings(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog(settingsVersion)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if settingsSchema {
		data, err := c.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	var opts []settings.Option
	if settingsEffect != "" {
		e, ok := c.Effect(settingsEffect)
		if !ok {
			return fmt.Errorf("unknown effect %q (known: %s)", settingsEffect, strings.Join(c.EffectNames(), ", "))
		}
		opts = e.Options
	} else {
		opts = c.Options()
	}

	if settingsJSON {
		data, err := json.MarshalIndent(opts, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	printOptions(out, opts)
	return nil
}

func printOptions(out io.Writer, opts []settings.Option) {
	group := "\x00"
	for _, o := range opts {
		if o.Effect != group {
			group = o.Effect
			title := "Global"
			if group != "" {
				title = "Effect " + group
			}
			fmt.Fprintf(out, "\n%s\n", labelStyle.Render(title))
		}

		detail := o.Type
		if o.List {
			detail += " list"
		}
		if len(o.Range) == 2 {
			detail += fmt.Sprintf(", %g..%g", o.Range[0], o.Range[1])
		}
		if len(o.ValidValues) > 0 {
			detail += ", one of " + strings.Join(o.ValidValues, "|")
		}
		if o.Default != nil {
			detail += fmt.Sprintf(", default %v", o.Default)
		}
		if o.Since != "" {
			detail += ", since " + o.Since
		}
		fmt.Fprintf(out, "  %s (%s)\n", o.Key, detail)
		fmt.Fprintf(out, "      %s\n", o.Description)
		for _, h := range o.Hints {
			fmt.Fprintf(out, "      %s\n", hintStyle.Render(h))
		}
	}
}
