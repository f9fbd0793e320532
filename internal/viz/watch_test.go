package viz

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/sortsim/internal/config"
)

func TestWatchConfigReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sortsim.yaml")
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	got := make(chan any, 1)
	go func() { got <- watchConfigCmd(path)() }()

	updated := config.DefaultConfig()
	updated.Speed = 90
	updated.Theme = "ocean"

	// the watcher may not be registered yet, so keep rewriting
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case msg := <-got:
			changed, ok := msg.(configChangedMsg)
			if !ok {
				t.Fatalf("got %T, want configChangedMsg", msg)
			}
			if changed.cfg.Speed != 90 {
				t.Errorf("speed = %d, want 90", changed.cfg.Speed)
			}

			a := NewApp(newController([]int{3, 1, 2}), WithConfigWatch(path))
			a.applyConfig(changed.cfg)
			if a.ctrl.Speed() != 90 {
				t.Errorf("controller speed = %d, want 90", a.ctrl.Speed())
			}
			if a.currentTheme().Name != Themes[themeIndex("ocean")].Name {
				t.Errorf("theme = %s", a.currentTheme().Name)
			}
			return
		case <-ticker.C:
			if err := config.Save(path, updated); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatchConfigIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sortsim.yaml")
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	got := make(chan any, 1)
	go func() { got <- watchConfigCmd(path)() }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("speed: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case msg := <-got:
		t.Fatalf("unexpected message %v", msg)
	case <-time.After(300 * time.Millisecond):
	}
}
