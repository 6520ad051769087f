package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateSymlink creates a symbolic link at link pointing to target.
func CreateSymlink(target, link string) error {
	return os.Symlink(target, link)
}

// IsSymlink reports whether path itself is a symbolic link. A missing path
// is not an error and reports false.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// ReadSymlinkTarget returns the target of a symlink as stored in the link.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// ResolveSymlinkTarget returns the absolute, cleaned target of the symlink
// at path. Relative targets are resolved against the link's directory. The
// target itself is not required to exist.
func ResolveSymlinkTarget(path string) (string, error) {
	target, err := ReadSymlinkTarget(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving symlink target %s: %w", target, err)
	}
	return abs, nil
}

// RemoveLink removes the file or symlink at path without following it.
// A missing path is not an error. Directories are refused.
func RemoveLink(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory %s", path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
