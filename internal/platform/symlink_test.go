package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateSymlink(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.conf")
	if err := os.WriteFile(targetPath, []byte("casSharpness = 0.4"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.conf")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}

	data, err := os.ReadFile(linkPath)
	if err != nil {
		t.Fatalf("reading link: %v", err)
	}
	if string(data) != "casSharpness = 0.4" {
		t.Errorf("link content = %q", string(data))
	}
}

func TestIsSymlink(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "plain.conf")
	if err := os.WriteFile(file, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link.conf")
	if err := CreateSymlink("plain.conf", link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want bool
	}{
		{file, false},
		{link, true},
		{filepath.Join(tmp, "missing.conf"), false},
	}
	for _, tt := range tests {
		got, err := IsSymlink(tt.path)
		if err != nil {
			t.Fatalf("IsSymlink(%s): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("IsSymlink(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestResolveSymlinkTarget_Relative(t *testing.T) {
	tmp := t.TempDir()
	profiles := filepath.Join(tmp, "profiles")
	if err := os.MkdirAll(profiles, 0755); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(tmp, "vkBasalt.conf")
	if err := CreateSymlink("profiles/soft.conf", link); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveSymlinkTarget(link)
	if err != nil {
		t.Fatalf("ResolveSymlinkTarget: %v", err)
	}
	want := filepath.Join(profiles, "soft.conf")
	if got != want {
		t.Errorf("ResolveSymlinkTarget = %q, want %q", got, want)
	}
}

func TestRemoveLink(t *testing.T) {
	tmp := t.TempDir()

	target := filepath.Join(tmp, "target.conf")
	if err := os.WriteFile(target, []byte("x = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link.conf")
	if err := CreateSymlink(target, link); err != nil {
		t.Fatal(err)
	}

	if err := RemoveLink(link); err != nil {
		t.Fatalf("RemoveLink(symlink) failed: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link still exists after RemoveLink")
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("target should survive link removal: %v", err)
	}

	if err := RemoveLink(target); err != nil {
		t.Fatalf("RemoveLink(file) failed: %v", err)
	}
	if err := RemoveLink(target); err != nil {
		t.Errorf("RemoveLink on missing path should succeed, got %v", err)
	}
	if err := RemoveLink(tmp); err == nil {
		t.Error("expected RemoveLink to refuse a directory")
	}
}
