package settings

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var catalogBytes []byte

// Option types as written in the catalog.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeBoolean = "boolean"
)

// Option describes a single configuration key.
type Option struct {
	Key         string    `yaml:"key" json:"key"`
	Type        string    `yaml:"type" json:"type"`
	List        bool      `yaml:"list,omitempty" json:"list,omitempty"`
	Description string    `yaml:"description" json:"description"`
	Hints       []string  `yaml:"hints,omitempty" json:"hints,omitempty"`
	Default     any       `yaml:"default" json:"default"`
	Range       []float64 `yaml:"range,omitempty" json:"range,omitempty"`
	ValidValues []string  `yaml:"valid_values,omitempty" json:"valid_values,omitempty"`
	Since       string    `yaml:"since,omitempty" json:"since,omitempty"`

	// Effect is the effect the option belongs to, empty for global options.
	Effect string `yaml:"-" json:"effect,omitempty"`
}

// Effect groups the options of one built-in shader.
type Effect struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Since       string   `yaml:"since,omitempty" json:"since,omitempty"`
	Options     []Option `yaml:"options" json:"options"`
}

// Catalog is the full set of known options.
type Catalog struct {
	Global  []Option `yaml:"global" json:"global"`
	Effects []Effect `yaml:"effects" json:"effects"`

	schemaOnce sync.Once
	schema     *compiledSchema
	schemaErr  error
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses the embedded catalog once and returns it.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = parseCatalog(catalogBytes)
	})
	return loaded, loadErr
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing settings catalog: %w", err)
	}
	for i := range c.Effects {
		e := &c.Effects[i]
		for j := range e.Options {
			o := &e.Options[j]
			o.Effect = e.Name
			if o.Since == "" {
				o.Since = e.Since
			}
		}
	}
	for _, o := range c.Options() {
		if len(o.Range) != 0 && len(o.Range) != 2 {
			return nil, fmt.Errorf("settings catalog: %s: range needs two bounds, got %d", o.Key, len(o.Range))
		}
	}
	return &c, nil
}

// Options returns every option, global options first, then each effect's
// options in catalog order.
func (c *Catalog) Options() []Option {
	out := make([]Option, 0, len(c.Global))
	out = append(out, c.Global...)
	for _, e := range c.Effects {
		out = append(out, e.Options...)
	}
	return out
}

// Option looks up an option by its exact key.
func (c *Catalog) Option(key string) (Option, bool) {
	for _, o := range c.Options() {
		if o.Key == key {
			return o, true
		}
	}
	return Option{}, false
}

// Effect looks up a built-in effect by name.
func (c *Catalog) Effect(name string) (Effect, bool) {
	for _, e := range c.Effects {
		if e.Name == name {
			return e, true
		}
	}
	return Effect{}, false
}

// EffectNames returns the names of the built-in effects.
func (c *Catalog) EffectNames() []string {
	names := make([]string, 0, len(c.Effects))
	for _, e := range c.Effects {
		names = append(names, e.Name)
	}
	return names
}

// ForVersion returns the subset of the catalog available in the given
// vkBasalt release. A leading "v" is accepted.
func (c *Catalog) ForVersion(version string) (*Catalog, error) {
	v, err := parseVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing vkBasalt version %q: %w", version, err)
	}

	out := &Catalog{}
	for _, o := range c.Global {
		ok, err := availableIn(o.Since, v)
		if err != nil {
			return nil, fmt.Errorf("option %s: %w", o.Key, err)
		}
		if ok {
			out.Global = append(out.Global, o)
		}
	}
	for _, e := range c.Effects {
		ok, err := availableIn(e.Since, v)
		if err != nil {
			return nil, fmt.Errorf("effect %s: %w", e.Name, err)
		}
		if !ok {
			continue
		}
		filtered := e
		filtered.Options = nil
		for _, o := range e.Options {
			ok, err := availableIn(o.Since, v)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", o.Key, err)
			}
			if ok {
				filtered.Options = append(filtered.Options, o)
			}
		}
		out.Effects = append(out.Effects, filtered)
	}
	return out, nil
}

func availableIn(since string, v *semver.Version) (bool, error) {
	if since == "" {
		return true, nil
	}
	s, err := parseVersion(since)
	if err != nil {
		return false, fmt.Errorf("parsing since %q: %w", since, err)
	}
	return !s.GreaterThan(v), nil
}

// parseVersion strips a leading "v" and parses the version string.
func parseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
