package activation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vkbasalt-tools/vkprofiles/internal/profile"
)

type fixture struct {
	root    string
	global  string
	engine  *Engine
	profDir string
}

// newFixture lays out <tmp>/vkBasalt/profiles with the given profile files.
func newFixture(t *testing.T, profiles map[string]string) *fixture {
	t.Helper()
	root := filepath.Join(t.TempDir(), "vkBasalt")
	profDir := filepath.Join(root, "profiles")
	if err := os.MkdirAll(profDir, 0755); err != nil {
		t.Fatal(err)
	}
	for name, content := range profiles {
		if err := os.WriteFile(filepath.Join(profDir, name+".conf"), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	global := filepath.Join(root, "vkBasalt.conf")
	return &fixture{
		root:    root,
		global:  global,
		profDir: profDir,
		engine:  New(global, profile.NewStore(profDir)),
	}
}

func (f *fixture) readGlobal(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.global)
	if err != nil {
		t.Fatalf("reading global config: %v", err)
	}
	return string(data)
}

func (f *fixture) writeGlobal(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(f.global, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) mustActive(t *testing.T) (string, bool) {
	t.Helper()
	name, ok, err := f.engine.Active()
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	return name, ok
}

func TestActivateScenario(t *testing.T) {
	f := newFixture(t, map[string]string{
		"sharp": "casSharpness = 0.6",
		"soft":  "# vkBasalt Profile: soft\ncasSharpness = 0.2",
	})

	if err := f.engine.Activate("sharp"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	want := "# vkBasalt Profile: sharp\ncasSharpness = 0.6"
	src, _ := os.ReadFile(filepath.Join(f.profDir, "sharp.conf"))
	if string(src) != want {
		t.Errorf("sharp.conf = %q, want tag persisted to profile", src)
	}
	if got := f.readGlobal(t); got != want {
		t.Errorf("global config = %q, want %q", got, want)
	}
	if name, ok := f.mustActive(t); !ok || name != "sharp" {
		t.Errorf("Active() = (%q, %v), want sharp", name, ok)
	}

	if err := f.engine.SetEnableOnLaunch(true); err != nil {
		t.Fatalf("SetEnableOnLaunch: %v", err)
	}
	enabled, err := f.engine.EnableOnLaunch()
	if err != nil || !enabled {
		t.Fatalf("EnableOnLaunch() = %v, %v", enabled, err)
	}
	text := f.readGlobal(t)
	if n := strings.Count(text, "enableOnLaunch = True"); n != 1 {
		t.Errorf("global config has %d enableOnLaunch lines:\n%s", n, text)
	}
	if !strings.HasPrefix(text, "# vkBasalt Profile: sharp\n") {
		t.Errorf("tag should stay the first line:\n%s", text)
	}
	if name, ok := f.mustActive(t); !ok || name != "sharp" {
		t.Errorf("Active() after edit = (%q, %v), want sharp via tag", name, ok)
	}
}

func TestActivate_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.engine.Activate("ghost"); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("Activate(ghost) error = %v, want ErrNotFound", err)
	}
	if _, err := os.Lstat(f.global); !os.IsNotExist(err) {
		t.Error("failed activation must not create the global config")
	}
}

func TestActivate_ReplacesSymlink(t *testing.T) {
	f := newFixture(t, map[string]string{
		"soft":  "# vkBasalt Profile: soft\ncasSharpness = 0.2",
		"sharp": "casSharpness = 0.6",
	})
	if err := os.Symlink(filepath.Join(f.profDir, "soft.conf"), f.global); err != nil {
		t.Fatal(err)
	}

	if err := f.engine.Activate("sharp"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	info, err := os.Lstat(f.global)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Mode().IsRegular() {
		t.Error("global config should be a plain file after activation")
	}
	soft, _ := os.ReadFile(filepath.Join(f.profDir, "soft.conf"))
	if string(soft) != "# vkBasalt Profile: soft\ncasSharpness = 0.2" {
		t.Errorf("previous symlink target was modified: %q", soft)
	}
}

func TestActivate_CreatesConfigDir(t *testing.T) {
	profDir := filepath.Join(t.TempDir(), "profiles")
	if err := os.MkdirAll(profDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(profDir, "a.conf"), []byte("x = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	global := filepath.Join(t.TempDir(), "nested", "vkBasalt.conf")
	e := New(global, profile.NewStore(profDir))

	if err := e.Activate("a"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if _, err := os.Stat(global); err != nil {
		t.Errorf("global config not written: %v", err)
	}
}

func TestActivateThenActive_AnyPriorTagState(t *testing.T) {
	profiles := map[string]string{
		"untagged": "x = 1\n",
		"tagged":   "# vkBasalt Profile: tagged\nx = 2\n",
		"renamed":  "# vkBasalt Profile: before-rename\nx = 3\n",
		"mistag":   "# vkBasalt Profile: tagged\nx = 4\n",
	}
	for name := range profiles {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, profiles)
			if err := f.engine.Activate(name); err != nil {
				t.Fatalf("Activate: %v", err)
			}
			if got, ok := f.mustActive(t); !ok || got != name {
				t.Errorf("Active() = (%q, %v), want %q", got, ok, name)
			}
		})
	}
}

func TestActive(t *testing.T) {
	profiles := map[string]string{
		"soft":   "# vkBasalt Profile: soft\ncasSharpness = 0.2\n",
		"legacy": "casSharpness = 0.9\n",
	}

	t.Run("absent", func(t *testing.T) {
		f := newFixture(t, profiles)
		if name, ok := f.mustActive(t); ok {
			t.Errorf("Active() = %q, want none", name)
		}
	})

	t.Run("symlink into profiles", func(t *testing.T) {
		f := newFixture(t, profiles)
		if err := os.Symlink("profiles/legacy.conf", f.global); err != nil {
			t.Fatal(err)
		}
		if name, ok := f.mustActive(t); !ok || name != "legacy" {
			t.Errorf("Active() = (%q, %v), want legacy", name, ok)
		}
	})

	t.Run("dangling symlink", func(t *testing.T) {
		f := newFixture(t, profiles)
		if err := os.Symlink("profiles/gone.conf", f.global); err != nil {
			t.Fatal(err)
		}
		if name, ok := f.mustActive(t); ok {
			t.Errorf("Active() = %q, want none", name)
		}
	})

	t.Run("symlink elsewhere falls back to content", func(t *testing.T) {
		f := newFixture(t, profiles)
		other := filepath.Join(t.TempDir(), "copy.conf")
		if err := os.WriteFile(other, []byte(profiles["legacy"]), 0644); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(other, f.global); err != nil {
			t.Fatal(err)
		}
		if name, ok := f.mustActive(t); !ok || name != "legacy" {
			t.Errorf("Active() = (%q, %v), want legacy", name, ok)
		}
	})

	t.Run("tag names existing profile", func(t *testing.T) {
		f := newFixture(t, profiles)
		f.writeGlobal(t, "# vkBasalt Profile: soft\ncasSharpness = 0.3\n")
		if name, ok := f.mustActive(t); !ok || name != "soft" {
			t.Errorf("Active() = (%q, %v), want soft", name, ok)
		}
	})

	t.Run("tag names missing profile, content matches", func(t *testing.T) {
		f := newFixture(t, map[string]string{
			"kept": "# vkBasalt Profile: deleted\nx = 1\n",
		})
		f.writeGlobal(t, "# vkBasalt Profile: deleted\nx = 1\n")
		if name, ok := f.mustActive(t); !ok || name != "kept" {
			t.Errorf("Active() = (%q, %v), want kept", name, ok)
		}
	})

	t.Run("untagged content match", func(t *testing.T) {
		f := newFixture(t, profiles)
		f.writeGlobal(t, "casSharpness = 0.9\n")
		if name, ok := f.mustActive(t); !ok || name != "legacy" {
			t.Errorf("Active() = (%q, %v), want legacy", name, ok)
		}
	})

	t.Run("ad hoc settings", func(t *testing.T) {
		f := newFixture(t, profiles)
		f.writeGlobal(t, "casSharpness = 0.1\n")
		if name, ok := f.mustActive(t); ok {
			t.Errorf("Active() = %q, want none", name)
		}
	})
}

func TestReset(t *testing.T) {
	f := newFixture(t, map[string]string{"a": "x = 1"})
	if err := f.engine.Activate("a"); err != nil {
		t.Fatal(err)
	}

	if err := f.engine.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := os.Lstat(f.global); !os.IsNotExist(err) {
		t.Error("global config still exists after Reset")
	}
	if name, ok := f.mustActive(t); ok {
		t.Errorf("Active() after Reset = %q, want none", name)
	}
	if err := f.engine.Reset(); err != nil {
		t.Errorf("second Reset should succeed, got %v", err)
	}
}

func TestReset_Symlink(t *testing.T) {
	f := newFixture(t, map[string]string{"a": "x = 1"})
	target := filepath.Join(f.profDir, "a.conf")
	if err := os.Symlink(target, f.global); err != nil {
		t.Fatal(err)
	}
	if err := f.engine.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("Reset must not remove the symlink target: %v", err)
	}
}

func TestIsActiveTagged(t *testing.T) {
	tests := []struct {
		name   string
		global string
		want   bool
	}{
		{"tagged existing", "# vkBasalt Profile: soft\nx = 9\n", true},
		{"tagged missing profile", "# vkBasalt Profile: ghost\nx = 1\n", false},
		{"untagged but content matches", "x = 1\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				"soft":   "# vkBasalt Profile: soft\nx = 2\n",
				"legacy": "x = 1\n",
			})
			f.writeGlobal(t, tt.global)
			got, err := f.engine.IsActiveTagged()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("IsActiveTagged() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("absent", func(t *testing.T) {
		f := newFixture(t, nil)
		if got, err := f.engine.IsActiveTagged(); err != nil || got {
			t.Errorf("IsActiveTagged() = %v, %v; want false, nil", got, err)
		}
	})
}

func TestEnableOnLaunch(t *testing.T) {
	tests := []struct {
		name   string
		global string
		want   bool
	}{
		{"true", "enableOnLaunch = True\n", true},
		{"lowercase", "enableOnLaunch=true\n", true},
		{"false", "enableOnLaunch = False\n", false},
		{"first wins", "enableOnLaunch = True\nenableOnLaunch = False\n", true},
		{"commented out", "# enableOnLaunch = True\n", false},
		{"non-boolean", "enableOnLaunch = on\n", false},
		{"missing", "effects = cas\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.writeGlobal(t, tt.global)
			got, err := f.engine.EnableOnLaunch()
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("EnableOnLaunch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetEnableOnLaunch(t *testing.T) {
	t.Run("creates missing global", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "vkBasalt")
		e := New(filepath.Join(root, "vkBasalt.conf"), profile.NewStore(filepath.Join(root, "profiles")))
		if err := e.SetEnableOnLaunch(false); err != nil {
			t.Fatalf("SetEnableOnLaunch: %v", err)
		}
		text, err := e.GlobalConfig()
		if err != nil {
			t.Fatal(err)
		}
		if text != "enableOnLaunch = False\n" {
			t.Errorf("global config = %q", text)
		}
	})

	t.Run("replaces in place", func(t *testing.T) {
		f := newFixture(t, nil)
		f.writeGlobal(t, "# vkBasalt Profile: a\neffects = cas\nenableOnLaunch = False\ntoggleKey = Home\n")
		if err := f.engine.SetEnableOnLaunch(true); err != nil {
			t.Fatal(err)
		}
		want := "# vkBasalt Profile: a\neffects = cas\nenableOnLaunch = True\ntoggleKey = Home\n"
		if got := f.readGlobal(t); got != want {
			t.Errorf("global config = %q, want %q", got, want)
		}
	})

	t.Run("writes through symlink", func(t *testing.T) {
		f := newFixture(t, map[string]string{"soft": "x = 1\n"})
		if err := os.Symlink("profiles/soft.conf", f.global); err != nil {
			t.Fatal(err)
		}
		if err := f.engine.SetEnableOnLaunch(true); err != nil {
			t.Fatal(err)
		}
		if name, ok := f.mustActive(t); !ok || name != "soft" {
			t.Errorf("Active() = (%q, %v), want soft through symlink", name, ok)
		}
		src, _ := os.ReadFile(filepath.Join(f.profDir, "soft.conf"))
		if string(src) != "enableOnLaunch = True\nx = 1\n" {
			t.Errorf("soft.conf = %q", src)
		}
	})
}

func TestGlobalConfig_Missing(t *testing.T) {
	f := newFixture(t, nil)
	if _, err := f.engine.GlobalConfig(); !errors.Is(err, ErrNoGlobalConfig) {
		t.Fatalf("GlobalConfig() error = %v, want ErrNoGlobalConfig", err)
	}
}

func TestSteamCommand(t *testing.T) {
	f := newFixture(t, nil)

	got, err := f.engine.SteamCommand("racing")
	if err != nil {
		t.Fatalf("SteamCommand: %v", err)
	}
	want := "VKBASALT_CONFIG_FILE=" + filepath.Join(f.profDir, "racing.conf") + " %command%"
	if got != want {
		t.Errorf("SteamCommand() = %q, want %q", got, want)
	}

	if _, err := f.engine.SteamCommand("a/b"); !errors.Is(err, profile.ErrInvalidName) {
		t.Errorf("SteamCommand(a/b) error = %v, want ErrInvalidName", err)
	}
}
