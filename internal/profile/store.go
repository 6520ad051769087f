package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/vkbasalt-tools/vkprofiles/internal/platform"
	"golang.org/x/sync/errgroup"
)

// Ext is the file extension of profile files.
const Ext = ".conf"

// defaultFilePerm applies when an existing file's mode cannot be read.
const defaultFilePerm os.FileMode = 0644

// Store reads and repairs profile files in a single directory.
type Store struct {
	dir     string
	workers int
}

// NewStore returns a Store over dir. The directory is not required to exist.
func NewStore(dir string) *Store {
	return &Store{dir: dir, workers: runtime.GOMAXPROCS(0)}
}

// Dir returns the profiles directory.
func (s *Store) Dir() string { return s.dir }

// ValidName reports whether name can be used as a profile file stem.
func ValidName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidName, name)
		}
	}
	return nil
}

// Path returns the path of the file backing profile name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+Ext)
}

// Exists reports whether profile name resolves to a regular file.
func (s *Store) Exists(name string) bool {
	if ValidName(name) != nil {
		return false
	}
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// List returns the names of all profiles, sorted ascending. A missing
// profiles directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profiles directory %s: %w", s.dir, err)
	}

	names := []string{}
	for _, e := range entries {
		name, ok := s.profileName(e)
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// profileName maps a directory entry to a profile name. Symlinks count when
// they resolve to a regular file.
func (s *Store) profileName(e fs.DirEntry) (string, bool) {
	stem, ok := strings.CutSuffix(e.Name(), Ext)
	if !ok || stem == "" {
		return "", false
	}
	switch {
	case e.Type().IsRegular():
		return stem, true
	case e.Type()&fs.ModeSymlink != 0:
		info, err := os.Stat(filepath.Join(s.dir, e.Name()))
		return stem, err == nil && info.Mode().IsRegular()
	}
	return "", false
}

// Read returns the content of profile name.
func (s *Store) Read(name string) (string, error) {
	if err := ValidName(name); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("reading profile %s: %w", name, err)
	}
	return string(data), nil
}

// Write replaces the content of an existing profile. The write goes through
// a temp file and rename; a profile that is a symlink has its target
// rewritten so the link stays intact.
func (s *Store) Write(name, text string) error {
	if !s.Exists(name) {
		if err := ValidName(name); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	path, err := filepath.EvalSymlinks(s.Path(name))
	if err != nil {
		return fmt.Errorf("resolving profile %s: %w", name, err)
	}
	perm := platform.FileMode(path, defaultFilePerm)
	if err := platform.WriteFileAtomic(path, []byte(text), perm); err != nil {
		return fmt.Errorf("writing profile %s: %w", name, err)
	}
	return nil
}

// Repair makes sure profile name is tagged with its own name, persisting the
// fix when needed. It returns the (possibly updated) content and whether the
// file was rewritten.
func (s *Store) Repair(name string) (string, bool, error) {
	text, err := s.Read(name)
	if err != nil {
		return "", false, err
	}
	tagged := EnsureTag(text, name)
	if tagged == text {
		return text, false, nil
	}
	if err := s.Write(name, tagged); err != nil {
		return "", false, err
	}
	return tagged, true, nil
}

// CheckTags reports, for every profile, whether its tag matches its name.
// Files are read concurrently.
func (s *Store) CheckTags() (map[string]bool, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result = make(map[string]bool, len(names))
	)
	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for _, name := range names {
		if ValidName(name) != nil {
			// Such a name can never match an extracted tag.
			mu.Lock()
			result[name] = false
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			text, err := s.Read(name)
			if err != nil {
				return err
			}
			mu.Lock()
			result[name] = HasTag(text, name)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// PatchUntagged repairs every profile whose tag does not match its name.
// A failure on one file does not stop the others; the returned bool reports
// whether any file changed and the error joins all failures.
func (s *Store) PatchUntagged() (bool, error) {
	names, err := s.List()
	if err != nil {
		return false, err
	}

	changed := false
	var errs []error
	for _, name := range names {
		_, fixed, err := s.Repair(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		changed = changed || fixed
	}
	return changed, errors.Join(errs...)
}

// FindByContent returns the first profile, in directory order, whose content
// is byte-identical to text.
func (s *Store) FindByContent(text string) (string, bool, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading profiles directory %s: %w", s.dir, err)
	}

	want := []byte(text)
	for _, e := range entries {
		name, ok := s.profileName(e)
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return "", false, fmt.Errorf("reading profile %s: %w", name, err)
		}
		if bytes.Equal(data, want) {
			return name, true, nil
		}
	}
	return "", false, nil
}
