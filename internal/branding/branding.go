// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	ConfigDir   string `yaml:"config_dir"`
	ToolDir     string `yaml:"tool_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "vkprofiles",
			DisplayName: "vkBasalt Profiles",
			Description: "Switch the active vkBasalt configuration between saved profiles",
			ConfigDir:   "vkBasalt",
			ToolDir:     "vkprofiles",
			EnvPrefix:   "VKPROFILES",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "vkprofiles").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigDir returns the vkBasalt directory name under ~/.config (e.g., "vkBasalt").
func ConfigDir() string { load(); return defaults.ConfigDir }

// ToolDir returns the directory name under ~/.config holding the tool's own
// settings (e.g., "vkprofiles").
func ToolDir() string { load(); return defaults.ToolDir }

// EnvPrefix returns the environment variable prefix (e.g., "VKPROFILES").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("CONFIG_DIR") → "VKPROFILES_CONFIG_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
