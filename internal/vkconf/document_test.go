package vkconf

import (
	"strings"
	"testing"
)

func isKey(key string) LineMatcher {
	return func(line string) bool {
		k, _, ok := KeyValue(strings.TrimSpace(line))
		return ok && k == key
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"a = 1",
		"a = 1\n",
		"# c\n\na = 1\nb = 2\n",
		"a = 1\r\nb = 2\r\n",
		"a = 1\r\nb = 2",
	}
	for _, in := range inputs {
		if got := NewDocument(in).String(); got != in {
			t.Errorf("round trip %q = %q", in, got)
		}
	}
}

func TestPreambleEnd(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a = 1\n", 0},
		{"# one\n\n# two\na = 1\n", 3},
		{"# only comments\n\n", 2},
	}
	for _, tt := range tests {
		if got := NewDocument(tt.text).PreambleEnd(); got != tt.want {
			t.Errorf("PreambleEnd(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestReplaceOrInsert(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "replace first match only",
			text: "x = 1\nenableOnLaunch = False\nenableOnLaunch = False\n",
			want: "x = 1\nenableOnLaunch = True\nenableOnLaunch = False\n",
		},
		{
			name: "insert after preamble",
			text: "# header\n\nx = 1\n",
			want: "# header\n\nenableOnLaunch = True\nx = 1\n",
		},
		{
			name: "append to all-comment text",
			text: "# header\n",
			want: "# header\nenableOnLaunch = True\n",
		},
		{
			name: "empty text",
			text: "",
			want: "enableOnLaunch = True\n",
		},
		{
			name: "keeps CRLF",
			text: "x = 1\r\nenableOnLaunch = False\r\n",
			want: "x = 1\r\nenableOnLaunch = True\r\n",
		},
		{
			name: "insert into CRLF text",
			text: "# h\r\nx = 1\r\n",
			want: "# h\r\nenableOnLaunch = True\r\nx = 1\r\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplaceOrInsert(tt.text, isKey("enableOnLaunch"), "enableOnLaunch = True")
			if got != tt.want {
				t.Errorf("ReplaceOrInsert() = %q, want %q", got, tt.want)
			}
		})
	}
}
