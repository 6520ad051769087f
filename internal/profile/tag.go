package profile

import (
	"strings"

	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
)

// TagLabel is the label of a profile tag line.
const TagLabel = "vkBasalt Profile"

// CanonicalTag returns the tag line written for name.
func CanonicalTag(name string) string {
	return "# " + TagLabel + ": " + name
}

// parseTagLine reports whether line is a tag line and returns the trimmed
// name it carries. The label is matched case-insensitively and horizontal
// whitespace is tolerated around "#", between the label words and around
// the colon. A tag line with an empty name is still a tag line.
func parseTagLine(line string) (name string, ok bool) {
	s := trimHSpace(line)
	if !strings.HasPrefix(s, "#") {
		return "", false
	}
	s = trimHSpace(s[1:])

	s, ok = cutFold(s, "vkbasalt")
	if !ok {
		return "", false
	}
	rest := trimHSpace(s)
	if len(rest) == len(s) {
		// The label words must be separated.
		return "", false
	}
	s, ok = cutFold(rest, "profile")
	if !ok {
		return "", false
	}
	s = trimHSpace(s)
	if !strings.HasPrefix(s, ":") {
		return "", false
	}
	return strings.TrimSpace(s[1:]), true
}

// ExtractTag returns the name from the first tag line in text, scanning top
// to bottom. Tag lines with an empty name are skipped.
func ExtractTag(text string) (string, bool) {
	d := vkconf.NewDocument(text)
	i := d.Find(func(line string) bool {
		name, ok := parseTagLine(line)
		return ok && name != ""
	})
	if i < 0 {
		return "", false
	}
	name, _ := parseTagLine(d.Line(i))
	return name, true
}

// HasTag reports whether text carries a tag naming name.
func HasTag(text, name string) bool {
	got, ok := ExtractTag(text)
	return ok && got == name
}

// EnsureTag returns text tagged as name. Text already tagged as name is
// returned unchanged. Otherwise the first tag line, whatever name it holds,
// is replaced in place; with no tag line at all a new one is inserted before
// the first line that is neither blank nor a comment.
func EnsureTag(text, name string) string {
	if HasTag(text, name) {
		return text
	}
	return vkconf.ReplaceOrInsert(text, isTagLine, CanonicalTag(name))
}

func isTagLine(line string) bool {
	_, ok := parseTagLine(line)
	return ok
}

func trimHSpace(s string) string {
	return strings.TrimLeft(s, " \t")
}

// cutFold strips prefix from s, ignoring ASCII case.
func cutFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
