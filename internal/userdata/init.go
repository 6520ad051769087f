package userdata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/vkbasalt-tools/vkprofiles/internal/platform"
	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
)

// DefaultImportName is the profile name used when importing an existing
// global config during init.
const DefaultImportName = "default"

// InitLayout creates the vkBasalt config and profiles directories. When
// importAs is non-empty, the profiles directory holds no profiles yet, and a
// global config exists, that config is saved as profile importAs and the
// global config is re-tagged so it resolves to the new profile. Progress is
// printed to w; existing items are skipped with a message.
func InitLayout(w io.Writer, p Paths, importAs string) error {
	if err := ensureDir(w, p.ConfigDir, DirPermNormal); err != nil {
		return err
	}
	if err := ensureDir(w, p.ProfilesDir, DirPermNormal); err != nil {
		return err
	}
	if importAs == "" {
		return nil
	}
	return importGlobal(w, p, importAs)
}

func importGlobal(w io.Writer, p Paths, name string) error {
	if err := profile.ValidName(name); err != nil {
		return err
	}

	names, err := p.Store().List()
	if err != nil {
		return err
	}
	if len(names) > 0 {
		fmt.Fprintf(w, "  [SKIP] %s already holds %d profile(s)\n", p.ProfilesDir, len(names))
		return nil
	}

	data, err := os.ReadFile(p.GlobalConfig)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [SKIP] no global config at %s to import\n", p.GlobalConfig)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading global config: %w", err)
	}

	tagged := profile.EnsureTag(string(data), name)
	target := p.Store().Path(name)
	if err := platform.WriteFileAtomic(target, []byte(tagged), FilePermNormal); err != nil {
		return fmt.Errorf("importing global config as %s: %w", name, err)
	}
	fmt.Fprintf(w, "  [ OK ] Imported %s as profile %q\n", p.GlobalConfig, name)

	if tagged == string(data) {
		return nil
	}
	// Replace rather than write through, in case the global config is a
	// symlink into some other tool's files.
	if err := platform.RemoveLink(p.GlobalConfig); err != nil {
		return fmt.Errorf("removing global config: %w", err)
	}
	if err := platform.WriteFileAtomic(p.GlobalConfig, []byte(tagged), FilePermNormal); err != nil {
		return fmt.Errorf("tagging global config: %w", err)
	}
	fmt.Fprintf(w, "  [ OK ] Tagged %s as %q\n", p.GlobalConfig, name)
	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll may not apply exact perms if parent dirs needed creation.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
