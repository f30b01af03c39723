// Package watcher re-scans inputs when they change on disk.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/henrykdz/pathment/internal/common"
	"github.com/henrykdz/pathment/internal/config"
	"github.com/rs/zerolog"
)

// Handler receives the path of a changed or removed file.
type Handler func(path string)

// Watcher debounces filesystem events per file and hands settled changes to
// its handlers. Handlers run on timer goroutines, one at a time per path.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	include  []string
	exclude  []string
	logger   zerolog.Logger

	onChange Handler
	onRemove Handler

	// roots maps watched directories to the root they were added under.
	roots map[string]string
	// globs holds the patterns a root was added with. Roots without an entry
	// accept every file.
	globs map[string][]string
	// files holds files watched individually through their parent directory.
	files map[string]struct{}

	timers  map[string]*time.Timer
	timerMu sync.Mutex
	mu      sync.Mutex
}

// NewWatcher creates a Watcher. Include and exclude globs come from the input
// configuration and are matched against paths relative to each watched root.
func NewWatcher(watchCfg config.WatchConfig, inputCfg config.InputConfig, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, common.WrapError(err, "failed to create file watcher")
	}

	debounce := time.Duration(watchCfg.DebounceMs) * time.Millisecond
	if watchCfg.DebounceMs <= 0 {
		debounce = time.Duration(config.DefaultWatchDebounceMs) * time.Millisecond
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		include:  inputCfg.Include,
		exclude:  inputCfg.Exclude,
		logger:   logger.With().Str("component", "Watcher").Logger(),
		onChange: func(string) {},
		onRemove: func(string) {},
		roots:    make(map[string]string),
		globs:    make(map[string][]string),
		files:    make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// OnChange sets the handler for created or modified files.
func (w *Watcher) OnChange(h Handler) {
	w.onChange = h
}

// OnRemove sets the handler for removed or renamed files.
func (w *Watcher) OnRemove(h Handler) {
	w.onRemove = h
}

// Add watches files, directories and doublestar globs. Directories are
// watched recursively. A glob watches the directory before its first wildcard
// and only reports files the pattern matches, including files created later.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return common.WrapErrorf(err, "failed to resolve %s", p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			if isGlob(p) {
				if err := w.addGlob(p); err != nil {
					return err
				}
				continue
			}
			return common.NewInputError(p, "cannot watch", err)
		}

		if !info.IsDir() {
			if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
				return common.WrapErrorf(err, "failed to watch %s", p)
			}
			w.mu.Lock()
			w.files[abs] = struct{}{}
			w.mu.Unlock()
			continue
		}
		w.mu.Lock()
		delete(w.globs, abs)
		w.mu.Unlock()
		if err := w.addTree(abs, abs); err != nil {
			return err
		}
	}
	return nil
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{") && doublestar.ValidatePattern(filepath.ToSlash(p))
}

// addGlob watches the static base of pattern as a root restricted to the
// remainder of the pattern.
func (w *Watcher) addGlob(pattern string) error {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	root, err := filepath.Abs(filepath.FromSlash(base))
	if err != nil {
		return common.WrapErrorf(err, "failed to resolve %s", pattern)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return common.NewInputError(pattern, "cannot watch", common.ErrNotFound)
	}

	w.mu.Lock()
	_, plain := w.roots[root]
	patterns, restricted := w.globs[root]
	if !plain || restricted {
		w.globs[root] = append(patterns, rest)
	}
	w.mu.Unlock()
	return w.addTree(root, root)
}

func (w *Watcher) addTree(root, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if rel := w.relative(root, path); rel != "." && w.excluded(rel) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("Failed to watch directory")
			return nil
		}
		w.mu.Lock()
		w.roots[path] = root
		w.mu.Unlock()
		return nil
	})
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()
	w.logger.Info().Dur("debounce", w.debounce).Msg("Watcher started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.mu.Lock()
			root, watched := w.roots[filepath.Dir(path)]
			w.mu.Unlock()
			if watched {
				if err := w.addTree(root, path); err != nil {
					w.logger.Warn().Err(err).Str("path", path).Msg("Failed to watch new directory")
				}
			}
			return
		}
	}

	if !w.accepts(path) {
		return
	}

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.schedule(path, w.onChange)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.schedule(path, w.onRemove)
	}
}

// schedule runs h for path once no event for it arrived during the debounce
// window. A later event replaces the pending handler.
func (w *Watcher) schedule(path string, h Handler) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.timerMu.Lock()
		delete(w.timers, path)
		w.timerMu.Unlock()
		h(path)
	})
}

// accepts reports whether events for path are of interest.
func (w *Watcher) accepts(path string) bool {
	w.mu.Lock()
	_, explicit := w.files[path]
	root, inTree := w.roots[filepath.Dir(path)]
	w.mu.Unlock()

	if explicit {
		return true
	}
	if !inTree {
		return false
	}
	rel := w.relative(root, path)
	if w.excluded(rel) {
		return false
	}
	w.mu.Lock()
	patterns, restricted := w.globs[root]
	w.mu.Unlock()
	if restricted {
		return matchesAny(patterns, rel)
	}
	if len(w.include) == 0 {
		return true
	}
	return matchesAny(w.include, rel)
}

func (w *Watcher) excluded(rel string) bool {
	return matchesAny(w.exclude, rel)
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Pending returns the number of debounced changes not yet handled.
func (w *Watcher) Pending() int {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	return len(w.timers)
}

func (w *Watcher) close() {
	w.timerMu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.timers = make(map[string]*time.Timer)
	w.timerMu.Unlock()

	if err := w.fsw.Close(); err != nil {
		w.logger.Debug().Err(err).Msg("Closing file watcher failed")
	}
	w.logger.Info().Msg("Watcher stopped")
}
