package backend

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/vkbasalt-tools/vkprofiles/internal/activation"
	"github.com/vkbasalt-tools/vkprofiles/internal/logging"
	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
	"github.com/vkbasalt-tools/vkprofiles/internal/settings"
	"github.com/vkbasalt-tools/vkprofiles/internal/userdata"
	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
)

// Backend exposes the profile operations with narrowed results.
type Backend struct {
	paths  userdata.Paths
	engine *activation.Engine
	log    *log.Logger
}

// New returns a Backend over the given layout. A nil logger discards output.
func New(paths userdata.Paths, logger *log.Logger) *Backend {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Backend{
		paths:  paths,
		engine: paths.Engine(),
		log:    logger,
	}
}

// Paths returns the layout the backend operates on.
func (b *Backend) Paths() userdata.Paths { return b.paths }

// Engine returns the underlying activation engine.
func (b *Backend) Engine() *activation.Engine { return b.engine }

// Store returns the underlying profile store.
func (b *Backend) Store() *profile.Store { return b.engine.Store() }

// ListProfiles returns profile names in sorted order. The result is never nil.
func (b *Backend) ListProfiles() []string {
	names, err := b.Store().List()
	if err != nil {
		b.log.Error("listing profiles", "dir", b.paths.ProfilesDir, "err", err)
		return []string{}
	}
	return names
}

// GetActiveProfile returns the profile the global config resolves to.
func (b *Backend) GetActiveProfile() (string, bool) {
	name, ok, err := b.engine.Active()
	if err != nil {
		b.log.Error("resolving active profile", "err", err)
		return "", false
	}
	return name, ok
}

// ActivateProfileGlobally makes name the active profile.
func (b *Backend) ActivateProfileGlobally(name string) bool {
	if err := b.engine.Activate(name); err != nil {
		b.log.Error("activating profile", "profile", name, "err", err)
		return false
	}
	b.log.Info("activated profile", "profile", name)
	return true
}

// GetSteamCommand returns a Steam launch option that points vkBasalt at the
// named profile. The profile does not have to exist yet.
func (b *Backend) GetSteamCommand(name string) string {
	line, err := b.engine.SteamCommand(name)
	if err != nil {
		b.log.Error("building launch option", "profile", name, "err", err)
		return ""
	}
	return line
}

// ResetProfile removes the global config. An absent config is a success.
func (b *Backend) ResetProfile() bool {
	if err := b.engine.Reset(); err != nil {
		b.log.Error("resetting global config", "path", b.paths.GlobalConfig, "err", err)
		return false
	}
	b.log.Info("reset global config", "path", b.paths.GlobalConfig)
	return true
}

// CheckProfileTags reports, per profile, whether it carries its own tag.
func (b *Backend) CheckProfileTags() map[string]bool {
	tags, err := b.Store().CheckTags()
	if err != nil {
		b.log.Error("checking profile tags", "err", err)
		return map[string]bool{}
	}
	return tags
}

// PatchUntaggedProfiles tags every profile lacking its tag and reports
// whether any file changed. Profiles patched before a failure stay patched.
func (b *Backend) PatchUntaggedProfiles() bool {
	changed, err := b.Store().PatchUntagged()
	if err != nil {
		b.log.Error("patching untagged profiles", "err", err)
	}
	if changed {
		b.log.Info("patched untagged profiles")
	}
	return changed
}

// IsGlobalProfileTagged reports whether the global config names an existing
// profile through its tag.
func (b *Backend) IsGlobalProfileTagged() bool {
	tagged, err := b.engine.IsActiveTagged()
	if err != nil {
		b.log.Error("reading global config tag", "err", err)
		return false
	}
	return tagged
}

// GetEnableOnLaunchStatus reports the enableOnLaunch flag of the global config.
func (b *Backend) GetEnableOnLaunchStatus() bool {
	enabled, err := b.engine.EnableOnLaunch()
	if err != nil {
		b.log.Error("reading enableOnLaunch", "err", err)
		return false
	}
	return enabled
}

// SetEnableOnLaunch writes the enableOnLaunch flag and reports success.
func (b *Backend) SetEnableOnLaunch(enabled bool) bool {
	if err := b.engine.SetEnableOnLaunch(enabled); err != nil {
		b.log.Error("writing enableOnLaunch", "enabled", enabled, "err", err)
		return false
	}
	b.log.Info("set enableOnLaunch", "enabled", enabled)
	return true
}

// GetGlobalConfig returns the raw global config text, or "" when it is absent
// or unreadable.
func (b *Backend) GetGlobalConfig() string {
	text, err := b.engine.GlobalConfig()
	if errors.Is(err, activation.ErrNoGlobalConfig) {
		return ""
	}
	if err != nil {
		b.log.Error("reading global config", "err", err)
		return ""
	}
	return text
}

// GetProfileConfig returns the raw text of the named profile.
func (b *Backend) GetProfileConfig(name string) string {
	text, err := b.Store().Read(name)
	if err != nil {
		b.log.Error("reading profile", "profile", name, "err", err)
		return ""
	}
	return text
}

// GetParsedProfileConfig returns the profile's settings with typed values.
// The map is empty when the profile cannot be read.
func (b *Backend) GetParsedProfileConfig(name string) map[string]any {
	text, err := b.Store().Read(name)
	if err != nil {
		b.log.Error("reading profile", "profile", name, "err", err)
		return map[string]any{}
	}
	return vkconf.ParseString(text).Map()
}

// ValidateProfile checks the named profile against the settings catalog. It
// returns nil when the profile is clean or cannot be checked.
func (b *Backend) ValidateProfile(name string) []settings.Issue {
	text, err := b.Store().Read(name)
	if err != nil {
		b.log.Error("reading profile", "profile", name, "err", err)
		return nil
	}
	catalog, err := settings.Load()
	if err != nil {
		b.log.Error("loading settings catalog", "err", err)
		return nil
	}
	result, err := catalog.Validate(vkconf.ParseString(text))
	if err != nil {
		b.log.Error("validating profile", "profile", name, "err", err)
		return nil
	}
	return result.Issues
}
