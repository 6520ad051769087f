package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/vkbasalt-tools/vkprofiles/internal/vkconf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Result is the outcome of validating a config against the catalog.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// Issue is a single problem with one setting.
type Issue struct {
	Key     string `json:"key"`
	Message string `json:"message"`
	Keyword string `json:"keyword"`
}

// Validate checks parsed settings against the catalog. The error return is
// for schema construction failures; problems with the settings themselves
// are reported in the Result.
func (c *Catalog) Validate(s *vkconf.Settings) (*Result, error) {
	schema, err := c.compiled()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(s.Map())
	if err != nil {
		return nil, fmt.Errorf("converting settings to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing settings for validation: %w", err)
	}

	var issues []Issue
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = extractIssues(ve)
	}
	issues = append(issues, c.checkEffects(s)...)

	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Key < issues[j].Key })
	return &Result{Valid: len(issues) == 0, Issues: issues}, nil
}

// checkEffects verifies each entry of the colon separated effects chain is a
// built-in effect or a custom effect defined as a key in the same config.
func (c *Catalog) checkEffects(s *vkconf.Settings) []Issue {
	v, ok := s.Get("effects")
	if !ok {
		return nil
	}
	var issues []Issue
	for _, name := range strings.Split(v.String(), ":") {
		name = strings.TrimSpace(name)
		if name == "" {
			issues = append(issues, Issue{
				Key:     "effects",
				Keyword: "effects",
				Message: printer.Sprintf("empty effect name in %q", v.String()),
			})
			continue
		}
		if _, builtin := c.Effect(name); builtin {
			continue
		}
		if _, custom := s.Get(name); custom {
			continue
		}
		issues = append(issues, Issue{
			Key:     "effects",
			Keyword: "effects",
			Message: printer.Sprintf("unknown effect %q: not built in and not defined in this config", name),
		})
	}
	return issues
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}

	key := ""
	if len(ve.InstanceLocation) > 0 {
		key = ve.InstanceLocation[0]
	}
	keyword := ""
	msg := ""
	if ve.ErrorKind != nil {
		if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
			keyword = kw[len(kw)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	*issues = append(*issues, Issue{Key: key, Message: msg, Keyword: keyword})
}
