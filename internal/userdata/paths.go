package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkbasalt-tools/vkprofiles/internal/activation"
	"github.com/vkbasalt-tools/vkprofiles/internal/branding"
	"github.com/vkbasalt-tools/vkprofiles/internal/config"
	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
)

// Directory and file name constants for the vkBasalt layout.
const (
	ProfilesDir      = "profiles"
	GlobalConfigFile = "vkBasalt.conf"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Paths is the resolved vkBasalt layout. It is built once at startup and
// shared by every component that touches the filesystem.
type Paths struct {
	ConfigDir    string // ~/.config/vkBasalt
	ProfilesDir  string // ~/.config/vkBasalt/profiles
	GlobalConfig string // ~/.config/vkBasalt/vkBasalt.conf
}

// NewPaths returns the layout rooted at configDir.
func NewPaths(configDir string) Paths {
	return Paths{
		ConfigDir:    configDir,
		ProfilesDir:  filepath.Join(configDir, ProfilesDir),
		GlobalConfig: filepath.Join(configDir, GlobalConfigFile),
	}
}

// GetConfigRoot returns the vkBasalt config directory. It checks the
// VKPROFILES_CONFIG_DIR environment variable first, then the paths.config_dir
// setting, then falls back to ~/.config/vkBasalt.
func GetConfigRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v, nil
	}
	if v := config.Get(config.KeyConfigDir); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", branding.ConfigDir()), nil
}

// ResolvePaths resolves the layout from the environment and settings.
func ResolvePaths() (Paths, error) {
	root, err := GetConfigRoot()
	if err != nil {
		return Paths{}, err
	}
	return NewPaths(root), nil
}

// Store returns a profile store over the profiles directory.
func (p Paths) Store() *profile.Store {
	return profile.NewStore(p.ProfilesDir)
}

// Engine returns an activation engine over the global config.
func (p Paths) Engine() *activation.Engine {
	return activation.New(p.GlobalConfig, p.Store())
}

// ProfilesDirExists reports whether the profiles directory is present.
func (p Paths) ProfilesDirExists() bool {
	info, err := os.Stat(p.ProfilesDir)
	return err == nil && info.IsDir()
}
