// Package watch reports changes to the vkBasalt config files.
//
// A Watcher monitors a fixed set of directories (the vkBasalt config
// directory and its profiles directory) and invokes a callback after a quiet
// period. Events within the debounce window are coalesced so the callback
// fires once with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/vkbasalt-tools/vkprofiles/internal/logging"
)

// DefaultDebounce is the delay after the last event before OnChange fires.
// Atomic profile writes produce a create and a rename in quick succession.
const DefaultDebounce = 250 * time.Millisecond

// defaultIgnores are base-name patterns that never trigger callbacks: editor
// swap files and the temp files left by atomic writes.
var defaultIgnores = []string{
	"*.swp",
	"*.swo",
	"*~",
	".*.tmp-*",
	"4913",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are the directories to watch. Missing directories are
		// skipped; at least one must exist.
		Dirs []string

		// Debounce is the quiet period after the last event. Zero or
		// negative values fall back to DefaultDebounce.
		Debounce time.Duration

		// OnChange receives the deduplicated, sorted list of changed paths.
		OnChange func(ctx context.Context, changed []string) error

		// Logger receives non-fatal watcher diagnostics. nil discards them.
		Logger *log.Logger
	}

	// Watcher monitors directories and fires a debounced callback. Run must
	// be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		log      *log.Logger
		debounce time.Duration
		started  atomic.Bool
	}
)

// ErrNothingToWatch is returned by New when none of the directories exist.
var ErrNothingToWatch = errors.New("watch: no existing directory to watch")

// New creates a Watcher and registers every existing directory in cfg.Dirs.
func New(cfg Config) (*Watcher, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	added := 0
	for _, dir := range cfg.Dirs {
		info, statErr := os.Stat(dir)
		if statErr != nil || !info.IsDir() {
			logger.Debug("watch: skipping directory", "dir", dir)
			continue
		}
		if addErr := fsw.Add(dir); addErr != nil {
			fsw.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("watch: add directory %q: %w", dir, addErr)
		}
		added++
	}
	if added == 0 {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, ErrNothingToWatch
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		log:      logger,
		debounce: debounce,
	}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error if the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			// Retry later so pending events are not lost.
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.log.Warn("watch: callback failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.log.Warn("watch: close fsnotify", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			if isIgnored(evt.Name) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.log.Warn("watch: event queue overflowed", "err", err)
				continue
			}
			return fmt.Errorf("watch: fsnotify error: %w", err)
		}
	}
}

// isIgnored reports whether path's base name matches a default ignore
// pattern.
func isIgnored(path string) bool {
	base := filepath.Base(path)
	for _, pat := range defaultIgnores {
		if matched, err := filepath.Match(pat, base); err == nil && matched {
			return true
		}
	}
	return false
}
