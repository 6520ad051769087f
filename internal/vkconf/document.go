package vkconf

import "strings"

// LineMatcher reports whether a line (without its line terminator) is the
// one being looked for.
type LineMatcher func(line string) bool

// Document is config text split into lines for in-place editing. Joining an
// unmodified Document yields the original text byte for byte, including a
// missing final newline and CRLF terminators.
type Document struct {
	lines           []string
	trailingNewline bool
	crlf            bool
}

// NewDocument splits text into lines.
func NewDocument(text string) *Document {
	d := &Document{}
	if text == "" {
		d.trailingNewline = true
		return d
	}
	d.trailingNewline = strings.HasSuffix(text, "\n")
	body := strings.TrimSuffix(text, "\n")
	d.lines = strings.Split(body, "\n")
	d.crlf = strings.HasSuffix(d.lines[0], "\r")
	return d
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns line i with any trailing carriage return removed.
func (d *Document) Line(i int) string {
	return strings.TrimSuffix(d.lines[i], "\r")
}

// Find returns the index of the first line, scanning top to bottom, for
// which match returns true, or -1.
func (d *Document) Find(match LineMatcher) int {
	for i := range d.lines {
		if match(d.Line(i)) {
			return i
		}
	}
	return -1
}

// PreambleEnd returns the index of the first line that is neither blank nor
// a comment. When every line is preamble it returns Len().
func (d *Document) PreambleEnd() int {
	for i := range d.lines {
		if !IsPreamble(d.Line(i)) {
			return i
		}
	}
	return len(d.lines)
}

// Replace overwrites line i, keeping its original terminator style.
func (d *Document) Replace(i int, line string) {
	if strings.HasSuffix(d.lines[i], "\r") {
		line += "\r"
	}
	d.lines[i] = line
}

// Insert places line before index i (i == Len() appends).
func (d *Document) Insert(i int, line string) {
	if d.crlf {
		line += "\r"
	}
	d.lines = append(d.lines, "")
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = line
}

// String joins the lines back into text.
func (d *Document) String() string {
	if len(d.lines) == 0 {
		return ""
	}
	out := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return out
}

// IsPreamble reports whether line is blank or a full-line "#" comment.
func IsPreamble(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#")
}

// ReplaceOrInsert replaces the first line matching match with canonical.
// Without a match, canonical is inserted before the first line that is
// neither blank nor a comment, or at the end for all-preamble text.
func ReplaceOrInsert(text string, match LineMatcher, canonical string) string {
	d := NewDocument(text)
	if i := d.Find(match); i >= 0 {
		d.Replace(i, canonical)
	} else {
		d.Insert(d.PreambleEnd(), canonical)
	}
	return d.String()
}
