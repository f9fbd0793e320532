package viz

import (
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/san-kum/sortsim/internal/config"
)

// configChangedMsg carries a config file that was rewritten while the app
// was running.
type configChangedMsg struct {
	cfg *config.Config
}

// watchConfigCmd blocks until path is rewritten with a loadable config.
// The app issues it again after every change.
func watchConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			slog.Warn("config watch unavailable", "err", err)
			return nil
		}
		defer watcher.Close()

		// editors often replace the file, so watch the directory
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			slog.Warn("config watch unavailable", "path", path, "err", err)
			return nil
		}
		target := filepath.Clean(path)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := config.Load(path)
				if err != nil {
					// partially written, wait for the next event
					continue
				}
				return configChangedMsg{cfg: cfg}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				slog.Warn("config watch failed", "err", err)
				return nil
			}
		}
	}
}

// applyConfig takes the settings that are safe to change mid-run.
func (a *App) applyConfig(cfg *config.Config) {
	a.ctrl.SetSpeed(cfg.Speed)
	a.theme = themeIndex(cfg.Theme)
	a.styles = newStyles(a.currentTheme())
	slog.Debug("config reloaded", "speed", cfg.Speed, "theme", cfg.Theme)
	a.setStatus("config reloaded")
}
