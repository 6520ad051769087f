package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	path := filepath.Join(t.TempDir(), "sharp.conf")
	if err := os.WriteFile(path, []byte("casSharpness = 0.6"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	if perm := FileMode(path, 0); perm != 0600 {
		t.Errorf("permissions = %o, want %o", perm, 0600)
	}
}

func TestFileModeFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.conf")
	if got := FileMode(missing, 0640); got != 0640 {
		t.Errorf("FileMode fallback = %o, want %o", got, 0640)
	}
}
