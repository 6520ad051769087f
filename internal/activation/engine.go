package activation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vkbasalt-tools/vkprofiles/internal/platform"
	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
)

// EnableOnLaunchKey is the global setting that decides whether effects are
// on when a game starts.
const EnableOnLaunchKey = "enableOnLaunch"

// SteamEnvVar is the environment variable vkBasalt reads to locate a
// per-game config file.
const SteamEnvVar = "VKBASALT_CONFIG_FILE"

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// ErrNoGlobalConfig is returned when the global config file does not exist.
var ErrNoGlobalConfig = errors.New("global config not found")

// Engine manages a single global config path backed by a profile store.
type Engine struct {
	global string
	store  *profile.Store
}

// New returns an Engine for the global config at globalConfig.
func New(globalConfig string, store *profile.Store) *Engine {
	return &Engine{global: globalConfig, store: store}
}

// GlobalConfigPath returns the path of the global config.
func (e *Engine) GlobalConfigPath() string { return e.global }

// Store returns the profile store the engine resolves names against.
func (e *Engine) Store() *profile.Store { return e.store }

// Activate makes profile name the active one. The profile's own tag is
// repaired first and written back to the profile file, then whatever is at
// the global path is removed and replaced by a plain copy of the tagged
// content.
func (e *Engine) Activate(name string) error {
	if err := profile.ValidName(name); err != nil {
		return err
	}
	if !e.store.Exists(name) {
		return fmt.Errorf("%w: %s", profile.ErrNotFound, name)
	}

	text, _, err := e.store.Repair(name)
	if err != nil {
		return fmt.Errorf("repairing tag of %s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(e.global), dirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := platform.RemoveLink(e.global); err != nil {
		return fmt.Errorf("removing global config: %w", err)
	}
	if err := platform.WriteFileAtomic(e.global, []byte(text), filePerm); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

// Active resolves the profile currently occupying the global config. It
// tries, in order: a symlink into the profiles directory, the embedded tag
// when it names an existing profile, and a byte-exact content match against
// every profile. The bool is false when nothing matches or the global config
// does not exist.
func (e *Engine) Active() (string, bool, error) {
	isLink, err := platform.IsSymlink(e.global)
	if err != nil {
		return "", false, fmt.Errorf("inspecting global config: %w", err)
	}
	if isLink {
		if name, ok := e.linkedProfile(); ok {
			return name, true, nil
		}
	}

	text, err := e.readGlobal()
	if errors.Is(err, ErrNoGlobalConfig) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if name, ok := profile.ExtractTag(text); ok && e.store.Exists(name) {
		return name, true, nil
	}

	return e.store.FindByContent(text)
}

// linkedProfile returns the stem of the symlink target when the global
// config links to an existing file directly inside the profiles directory.
func (e *Engine) linkedProfile() (string, bool) {
	target, err := platform.ResolveSymlinkTarget(e.global)
	if err != nil {
		return "", false
	}
	profilesDir, err := filepath.Abs(e.store.Dir())
	if err != nil || filepath.Dir(target) != filepath.Clean(profilesDir) {
		return "", false
	}
	if _, err := os.Stat(target); err != nil {
		return "", false
	}
	base := filepath.Base(target)
	return strings.TrimSuffix(base, filepath.Ext(base)), true
}

// SteamCommand returns a Steam launch option pointing vkBasalt at profile
// name. The profile does not have to exist.
func (e *Engine) SteamCommand(name string) (string, error) {
	if err := profile.ValidName(name); err != nil {
		return "", err
	}
	path, err := filepath.Abs(e.store.Path(name))
	if err != nil {
		return "", fmt.Errorf("resolving profile path: %w", err)
	}
	return fmt.Sprintf("%s=%s %%command%%", SteamEnvVar, path), nil
}

// Reset removes the global config. A missing global config is not an error.
func (e *Engine) Reset() error {
	if err := platform.RemoveLink(e.global); err != nil {
		return fmt.Errorf("removing global config: %w", err)
	}
	return nil
}

// IsActiveTagged reports whether the global config carries a tag naming an
// existing profile. Unlike Active it never falls back to content comparison.
func (e *Engine) IsActiveTagged() (bool, error) {
	text, err := e.readGlobal()
	if errors.Is(err, ErrNoGlobalConfig) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	name, ok := profile.ExtractTag(text)
	return ok && e.store.Exists(name), nil
}

// GlobalConfig returns the raw text of the global config.
func (e *Engine) GlobalConfig() (string, error) {
	return e.readGlobal()
}

// EnableOnLaunch reports the enableOnLaunch setting of the global config.
// A missing file, a missing line or a value that is not a boolean literal
// all read as false.
func (e *Engine) EnableOnLaunch() (bool, error) {
	text, err := e.readGlobal()
	if errors.Is(err, ErrNoGlobalConfig) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	d := vkconf.NewDocument(text)
	i := d.Find(isEnableOnLaunchLine)
	if i < 0 {
		return false, nil
	}
	_, raw, _ := vkconf.KeyValue(strings.TrimSpace(d.Line(i)))
	enabled, ok := vkconf.ParseBool(raw)
	return ok && enabled, nil
}

// SetEnableOnLaunch rewrites the first enableOnLaunch line of the global
// config, or inserts one after the leading comment block. A missing global
// config is created. When the global config is a symlink the linked file is
// edited so the link stays in place.
func (e *Engine) SetEnableOnLaunch(enabled bool) error {
	if err := os.MkdirAll(filepath.Dir(e.global), dirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	text, err := e.readGlobal()
	if err != nil && !errors.Is(err, ErrNoGlobalConfig) {
		return err
	}

	line := EnableOnLaunchKey + " = " + vkconf.FormatBool(enabled)
	updated := vkconf.ReplaceOrInsert(text, isEnableOnLaunchLine, line)
	if updated == text && err == nil {
		return nil
	}

	path := e.global
	if resolved, evalErr := filepath.EvalSymlinks(e.global); evalErr == nil {
		path = resolved
	}
	perm := platform.FileMode(path, filePerm)
	if err := platform.WriteFileAtomic(path, []byte(updated), perm); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}
	return nil
}

func (e *Engine) readGlobal() (string, error) {
	data, err := os.ReadFile(e.global)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoGlobalConfig, e.global)
	}
	if err != nil {
		return "", fmt.Errorf("reading global config: %w", err)
	}
	return string(data), nil
}

func isEnableOnLaunchLine(line string) bool {
	key, _, ok := vkconf.KeyValue(strings.TrimSpace(line))
	return ok && key == EnableOnLaunchKey
}
