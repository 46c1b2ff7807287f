// Package watch rebuilds a report whenever one of its inputs changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/perfreport/internal/logfields"
)

// DefaultDebounce collapses bursts of writes (editors, plot scripts) into one rebuild.
const DefaultDebounce = 500 * time.Millisecond

// RebuildFunc rebuilds the report. It returns the inputs to watch from now on.
type RebuildFunc func(ctx context.Context) ([]string, error)

// Watcher monitors report inputs and triggers debounced rebuilds.
type Watcher struct {
	watcher  *fsnotify.Watcher
	rebuild  RebuildFunc
	debounce time.Duration

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
	// templateDirs are watched for any change, not just known files.
	templateDirs map[string]bool

	reloadChan chan struct{}
}

// New creates a watcher calling rebuild on changes.
func New(rebuild RebuildFunc, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		watcher:      fw,
		rebuild:      rebuild,
		debounce:     debounce,
		files:        make(map[string]bool),
		dirs:         make(map[string]bool),
		templateDirs: make(map[string]bool),
		reloadChan:   make(chan struct{}, 1),
	}, nil
}

// AddTemplateDir watches every file in dir.
func (w *Watcher) AddTemplateDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve template dir: %w", err)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.templateDirs[abs] = true
	return w.addDirLocked(abs)
}

// SetInputs replaces the set of watched input files. Directories are watched
// rather than files, which survives editors that replace files on save.
func (w *Watcher) SetInputs(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve input path: %w", err)
		}
		w.files[abs] = true
		if err := w.addDirLocked(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addDirLocked(dir string) error {
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.dirs[dir] = true
	return nil
}

// Relevant reports whether a change to path should trigger a rebuild.
func (w *Watcher) Relevant(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs] || w.templateDirs[filepath.Dir(abs)]
}

// Run performs an initial build and then rebuilds on changes until ctx is
// done. Rebuild errors are logged, not returned, so a broken input can be
// fixed without restarting.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	w.build(ctx)

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			slog.Debug("Input change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", logfields.Error(err))
		case <-timerC:
			timerC = nil
			w.build(ctx)
		case <-w.reloadChan:
			w.build(ctx)
		}
	}
}

// Trigger requests a rebuild outside of file events.
func (w *Watcher) Trigger() {
	select {
	case w.reloadChan <- struct{}{}:
		// Rebuild triggered
	default:
		// Rebuild already pending
	}
}

// TriggerOn requests a rebuild for every value received on signals until
// ctx is done or signals is closed.
func (w *Watcher) TriggerOn(ctx context.Context, signals <-chan os.Signal) {
	for {
		select {
		case <-ctx.Done():
			return
		case sig, ok := <-signals:
			if !ok {
				return
			}
			slog.Info("Rebuild requested", slog.String("signal", sig.String()))
			w.Trigger()
		}
	}
}

// build rebuilds once. Inputs returned alongside an error are still
// watched, so fixing them triggers the next rebuild.
func (w *Watcher) build(ctx context.Context) {
	inputs, err := w.rebuild(ctx)
	if len(inputs) > 0 {
		if serr := w.SetInputs(inputs); serr != nil {
			slog.Error("Failed to update watched inputs", logfields.Error(serr))
		}
	}
	if err != nil {
		slog.Error("Rebuild failed", logfields.Error(err))
	}
}
