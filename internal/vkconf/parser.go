package vkconf

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Settings is the typed result of parsing a config file. Lookups are
// case-sensitive; Keys preserves first-appearance order.
type Settings struct {
	keys   []string
	values map[string]Value
}

// NewSettings returns an empty Settings.
func NewSettings() *Settings {
	return &Settings{values: make(map[string]Value)}
}

// Set stores a value. A repeated key keeps its original position and takes
// the new value.
func (s *Settings) Set(key string, v Value) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Get returns the value for key.
func (s *Settings) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the setting keys in the order they first appeared.
func (s *Settings) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of distinct keys.
func (s *Settings) Len() int { return len(s.keys) }

// Map returns the settings as native Go values keyed by setting name.
func (s *Settings) Map() map[string]any {
	m := make(map[string]any, len(s.values))
	for k, v := range s.values {
		m[k] = v.Any()
	}
	return m
}

// Parse reads the dialect from r. Comments, blank lines, section headers and
// lines without "=" are skipped; the last occurrence of a key wins.
func Parse(r io.Reader) (*Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseString(string(data)), nil
}

// ParseString parses already-loaded config text. It cannot fail: malformed
// fragments are treated as absent.
func ParseString(text string) *Settings {
	s := NewSettings()
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if IsPreamble(trimmed) || strings.HasPrefix(trimmed, "[") {
			continue
		}
		key, raw, ok := KeyValue(trimmed)
		if !ok {
			continue
		}
		s.Set(key, Coerce(raw))
	}
	return s
}

// ParseFile parses the config file at path.
func ParseFile(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// KeyValue splits a line on its first "=". Both sides are trimmed; an empty
// key is rejected.
func KeyValue(line string) (key, value string, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

// Coerce converts raw value text to a typed Value. The first successful
// interpretation wins: integer, float, boolean, then string.
func Coerce(raw string) Value {
	raw = strings.TrimSpace(raw)

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		v := IntValue(i)
		v.raw = raw
		return v
	}

	if f, ok := parseFloat(raw); ok {
		v := FloatValue(f)
		v.raw = raw
		return v
	}

	if b, ok := ParseBool(raw); ok {
		v := BoolValue(b)
		v.raw = raw
		return v
	}

	v := StringValue(unquote(raw))
	v.raw = raw
	return v
}

// ParseBool recognizes the dialect's boolean literals: "true" and "false" in
// any letter case. Other spellings such as "on", "off", "yes" or "1" are
// not booleans.
func ParseBool(raw string) (bool, bool) {
	switch {
	case strings.EqualFold(raw, "true"):
		return true, true
	case strings.EqualFold(raw, "false"):
		return false, true
	}
	return false, false
}

// FormatBool renders b the way the dialect writes booleans ("True"/"False").
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// parseFloat accepts decimal floating-point literals only. Hex floats,
// infinities and NaN are left for the string branch.
func parseFloat(raw string) (float64, bool) {
	if raw == "" || strings.ContainsAny(raw, "xX") {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// unquote strips one layer of surrounding double quotes.
func unquote(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}
	return raw
}
