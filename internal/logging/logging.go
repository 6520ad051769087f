// Package logging builds the structured logger shared by the CLI and the
// backend.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vkbasalt-tools/vkprofiles/internal/branding"
)

// DefaultLevel keeps routine output quiet; failures still surface.
const DefaultLevel = "warn"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level selects DefaultLevel.
func New(w io.Writer, level string) (*log.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
		Level:  lvl,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
