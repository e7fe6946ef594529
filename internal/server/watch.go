package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ErrWatch indicates the file watcher could not be set up.
var ErrWatch = errors.New("watch failed")

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// Watcher rebuilds after files under Dirs, or any of Files, change.
type Watcher struct {
	Dirs     []string      // watched recursively
	Files    []string      // single files, e.g. the config
	Debounce time.Duration // DefaultDebounce when zero
	Logger   *log.Logger   // discards when nil
	Rebuild  func(ctx context.Context)
}

// Watch runs a Watcher with the default debounce until ctx is done.
func Watch(ctx context.Context, dirs []string, rebuild func(context.Context)) error {
	w := &Watcher{Dirs: dirs, Rebuild: rebuild}
	return w.Run(ctx)
}

// Run watches Dirs recursively and calls Rebuild once per settled burst of
// changes. Rebuilds never overlap; changes seen during a rebuild schedule
// exactly one more. Run returns nil when ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return fmt.Errorf("%w: no rebuild function", ErrWatch)
	}
	logger := w.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWatch, err)
	}
	defer func() { _ = fw.Close() }()

	dirs, err := absAll(w.Dirs)
	if err != nil {
		return err
	}
	files, err := absAll(w.Files)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWatch, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrWatch, dir)
		}
		addDirsRecursive(fw, dir, logger)
	}
	for _, file := range files {
		if err := fw.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("%w: %v", ErrWatch, err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	requests := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-requests:
				w.Rebuild(ctx)
			}
		}
	}()

	var timer *time.Timer
	fire := func() {
		select {
		case requests <- struct{}{}:
		default:
		}
	}
	defer func() {
		cancel()
		if timer != nil {
			timer.Stop()
		}
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev.Name, dirs, files) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					addDirsRecursive(fw, ev.Name, logger)
				}
			}
			logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.AfterFunc(debounce, fire)
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "err", err)
		}
	}
}

func addDirsRecursive(fw *fsnotify.Watcher, root string, logger *log.Logger) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			logger.Warn("watch add failed", "dir", p, "err", err)
		}
		return nil
	})
}

func absAll(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWatch, err)
		}
		out[i] = abs
	}
	return out, nil
}

// relevant reports whether a change to name should trigger a rebuild.
// Directories holding watched files also report their other entries.
func relevant(name string, dirs, files []string) bool {
	if ignoreEvent(name) {
		return false
	}
	for _, f := range files {
		if name == f {
			return true
		}
	}
	for _, d := range dirs {
		if rel, err := filepath.Rel(d, name); err == nil && filepath.IsLocal(rel) {
			return true
		}
	}
	return false
}

// ignoreEvent reports whether a change to path is editor or OS noise.
func ignoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	case base == "Thumbs.db", base == "4913":
		return true
	}
	return false
}
