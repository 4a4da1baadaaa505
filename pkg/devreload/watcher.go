package devreload

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultIgnore lists names and globs skipped by the watcher.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"dist",
	"*.tmp",
	"*.swp",
	"*~",
}

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Change is a batch of file events reported after the debounce window.
type Change struct {
	Paths []string
	// CSSOnly is set when every changed file is a stylesheet.
	CSSOnly bool
}

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	Paths    []string
	Ignore   []string
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher reports file changes under a set of directories.
type Watcher struct {
	cfg      WatcherConfig
	onChange func(Change)
	mu       sync.Mutex
}

// NewWatcher returns a Watcher; call Run to start it.
func NewWatcher(cfg WatcherConfig) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Ignore == nil {
		cfg.Ignore = DefaultIgnore
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Watcher{cfg: cfg}
}

// OnChange sets the callback. It runs on the watcher goroutine.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run watches until ctx is done. New directories are picked up as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("devreload: create watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range w.cfg.Paths {
		if err := w.addTree(fw, p); err != nil {
			return err
		}
	}

	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.cfg.Logger.Warn("devreload: watch new directory", slog.String("path", ev.Name), slog.String("error", err.Error()))
					}
				}
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.cfg.Logger.Warn("devreload: watcher error", slog.String("error", err.Error()))

		case <-fire:
			fire = nil
			w.emit(pending)
			pending = make(map[string]struct{})
		}
	}
}

func (w *Watcher) emit(pending map[string]struct{}) {
	if len(pending) == 0 {
		return
	}

	change := Change{Paths: make([]string, 0, len(pending)), CSSOnly: true}
	for p := range pending {
		change.Paths = append(change.Paths, p)
		if !strings.EqualFold(filepath.Ext(p), ".css") {
			change.CSSOnly = false
		}
	}

	w.mu.Lock()
	fn := w.onChange
	w.mu.Unlock()

	w.cfg.Logger.Debug("devreload: files changed", slog.Int("count", len(change.Paths)), slog.Bool("css_only", change.CSSOnly))
	if fn != nil {
		fn(change)
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("devreload: walk %s: %w", p, err)
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.ignored(p) {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			return fmt.Errorf("devreload: watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(p string) bool {
	name := filepath.Base(p)
	for _, pattern := range w.cfg.Ignore {
		if pattern == name {
			return true
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Watch wires a Watcher to a Server: stylesheet-only changes refresh styles,
// anything else reloads the page. It blocks until ctx is done.
func Watch(ctx context.Context, s *Server, cfg WatcherConfig) error {
	w := NewWatcher(cfg)
	w.OnChange(func(c Change) {
		if c.CSSOnly {
			for _, p := range c.Paths {
				s.NotifyCSS(filepath.Base(p))
			}
			return
		}
		s.NotifyReload()
	})
	return w.Run(ctx)
}
