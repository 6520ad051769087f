package userdata

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/vkbasalt-tools/vkprofiles/internal/platform"
)

// Check validates the vkBasalt config layout and reports per-profile tag
// status. When fix is true it creates missing directories, tags untagged
// profiles, and rewrites the global config from the active profile so it
// carries a tag.
func Check(w io.Writer, p Paths, fix bool) error {
	fmt.Fprintln(w, "vkBasalt layout check:")

	checkDirWithPerm(w, p.ConfigDir, DirPermNormal, fix)
	checkDirWithPerm(w, p.ProfilesDir, DirPermNormal, fix)
	if !p.ProfilesDirExists() {
		fmt.Fprintln(w, "         Run 'vkprofiles init' to create")
		return nil
	}

	engine := p.Engine()
	store := engine.Store()

	// Resolve before tagging: patching changes file contents, which would
	// break the content fallback for an untagged global config.
	active, activeOK, activeErr := engine.Active()

	tags, err := store.CheckTags()
	if err != nil {
		return fmt.Errorf("checking profile tags: %w", err)
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	untagged := 0
	for _, name := range names {
		if tags[name] {
			fmt.Fprintf(w, "  [ OK ] profile %q is tagged\n", name)
			continue
		}
		untagged++
		fmt.Fprintf(w, "  [WARN] profile %q has no tag\n", name)
	}
	if untagged > 0 && fix {
		if _, err := store.PatchUntagged(); err != nil {
			fmt.Fprintf(w, "  [FAIL] Could not tag profiles: %v\n", err)
		} else {
			fmt.Fprintf(w, "  [FIX ] Tagged %d profile(s)\n", untagged)
		}
	}

	checkGlobalConfig(w, p, fix, active, activeOK, activeErr)
	return nil
}

func checkGlobalConfig(w io.Writer, p Paths, fix bool, name string, ok bool, err error) {
	engine := p.Engine()

	if isLink, _ := platform.IsSymlink(p.GlobalConfig); isLink {
		target, linkErr := platform.ResolveSymlinkTarget(p.GlobalConfig)
		if linkErr != nil {
			fmt.Fprintf(w, "  [WARN] %s is an unreadable symlink: %v\n", p.GlobalConfig, linkErr)
			return
		}
		if _, statErr := os.Stat(target); errors.Is(statErr, fs.ErrNotExist) {
			fmt.Fprintf(w, "  [WARN] %s -> %s (target does not exist)\n", p.GlobalConfig, target)
			return
		}
		fmt.Fprintf(w, "  [ OK ] %s -> %s\n", p.GlobalConfig, target)
	} else if _, statErr := os.Stat(p.GlobalConfig); errors.Is(statErr, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist (no active profile)\n", p.GlobalConfig)
		return
	} else if statErr != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", p.GlobalConfig, statErr)
		return
	}

	if err != nil {
		fmt.Fprintf(w, "  [FAIL] resolving active profile: %v\n", err)
		return
	}
	if !ok {
		fmt.Fprintf(w, "  [WARN] %s does not match any profile\n", p.GlobalConfig)
		return
	}

	tagged, tagErr := engine.IsActiveTagged()
	if tagErr != nil {
		fmt.Fprintf(w, "  [FAIL] reading %s: %v\n", p.GlobalConfig, tagErr)
		return
	}
	if tagged {
		fmt.Fprintf(w, "  [ OK ] active profile %q (tagged)\n", name)
		return
	}
	fmt.Fprintf(w, "  [WARN] active profile %q resolved without a tag\n", name)
	if !fix {
		return
	}
	if err := engine.Activate(name); err != nil {
		fmt.Fprintf(w, "  [FAIL] Could not re-activate %q: %v\n", name, err)
		return
	}
	fmt.Fprintf(w, "  [FIX ] Re-activated %q with a tagged global config\n", name)
}

func checkDirWithPerm(w io.Writer, path string, expectedPerm os.FileMode, fix bool) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, expectedPerm); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return
			}
			platform.Chmod(path, expectedPerm)
			fmt.Fprintf(w, "  [FIX ] Created %s with %o\n", path, expectedPerm)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return
	}
	// Only flag directories vkBasalt itself could not read.
	if info.Mode().Perm()&0500 != 0500 {
		fmt.Fprintf(w, "  [WARN] %s has permissions %o (expected %o)\n", path, info.Mode().Perm(), expectedPerm)
		if fix {
			if chErr := platform.Chmod(path, expectedPerm); chErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not fix permissions on %s: %v\n", path, chErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] Fixed permissions on %s to %o\n", path, expectedPerm)
		}
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s (permissions %o)\n", path, info.Mode().Perm())
}
