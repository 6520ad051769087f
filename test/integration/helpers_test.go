//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/vkbasalt-tools/vkprofiles/internal/backend"
	"github.com/vkbasalt-tools/vkprofiles/internal/userdata"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ToolDir string         // VKPROFILES_HOME: tool config
	Paths   userdata.Paths // resolved from VKPROFILES_CONFIG_DIR
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so every vkprofiles operation is sandboxed. The env vars are
// restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	toolDir := t.TempDir()
	configDir := filepath.Join(t.TempDir(), "vkBasalt")
	t.Setenv("VKPROFILES_HOME", toolDir)
	t.Setenv("VKPROFILES_CONFIG_DIR", configDir)

	paths, err := userdata.ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths: %v", err)
	}
	if paths.ConfigDir != configDir {
		t.Fatalf("ResolvePaths ignored VKPROFILES_CONFIG_DIR: %s", paths.ConfigDir)
	}
	return &testEnv{ToolDir: toolDir, Paths: paths}
}

// backend returns a backend over the sandboxed layout.
func (e *testEnv) backend() *backend.Backend {
	return backend.New(e.Paths, nil)
}

// writeProfile writes profiles/<name>.conf.
func (e *testEnv) writeProfile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.Paths.ProfilesDir, name+".conf")
	writeFile(t, path, content)
	return path
}

// writeFile creates a file, making parent directories as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readFile returns the file contents or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
