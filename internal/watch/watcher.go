// Package watch reruns a generation step when files under a directory change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/doITmagic/phpgen/internal/logger"
)

// skipDirs are never watched.
var skipDirs = map[string]struct{}{
	".git":         {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"vendor":       {},
}

// Func is the step run after changes settle.
type Func func(ctx context.Context) error

// Options configure a Watcher
type Options struct {
	// Debounce is the quiet period before Func runs
	Debounce time.Duration
	// Extensions limits which files trigger a run, e.g. ".php"; empty means all
	Extensions []string
	// Ignore lists files whose changes never trigger a run, such as the
	// file the step itself writes
	Ignore []string
	Logger logger.Logger
}

// Watcher handles file system notifications for a directory tree
type Watcher struct {
	watcher    *fsnotify.Watcher
	root       string
	run        Func
	debounce   time.Duration
	extensions map[string]bool
	ignore     map[string]bool
	log        logger.Logger

	eventsMu sync.Mutex
	timer    *time.Timer

	// runMu keeps runs sequential
	runMu sync.Mutex
	runs  int
}

// New creates a watcher for root. Nothing is watched until Run is called.
func New(root string, run Func, opts Options) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetDefault()
	}
	exts := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		exts[strings.ToLower(ext)] = true
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, path := range opts.Ignore {
		ignore[absPath(path)] = true
	}

	return &Watcher{
		watcher:    w,
		root:       root,
		run:        run,
		debounce:   opts.Debounce,
		extensions: exts,
		ignore:     ignore,
		log:        opts.Logger.With("root", root),
	}, nil
}

// Run watches the tree until ctx is done. A run already scheduled when ctx
// ends is cancelled.
func (fw *Watcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	// Recursively add directories
	err := filepath.WalkDir(fw.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipped(path, fw.root) {
				return filepath.SkipDir
			}
			fw.add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fw.log.Info("Watcher started")
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.handle(ctx, event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Error("Watcher error", "error", err)

		case <-ctx.Done():
			fw.eventsMu.Lock()
			if fw.timer != nil {
				fw.timer.Stop()
			}
			fw.eventsMu.Unlock()
			fw.log.Info("Watcher stopped")
			return nil
		}
	}
}

func (fw *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	// Ignore chmod events (too noisy)
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return
	}

	// Handle directory creation: add to watcher
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipped(event.Name, fw.root) {
				fw.add(event.Name)
			}
			return
		}
	}

	if !fw.relevant(event.Name) {
		return
	}
	fw.log.Debug("Change detected", "file", event.Name, "op", event.Op.String())
	fw.trigger(ctx)
}

func (fw *Watcher) relevant(path string) bool {
	if fw.ignore[absPath(path)] {
		return false
	}
	if len(fw.extensions) == 0 {
		return true
	}
	return fw.extensions[strings.ToLower(filepath.Ext(path))]
}

func (fw *Watcher) add(path string) {
	if err := fw.watcher.Add(path); err != nil {
		fw.log.Warn("Unable to watch directory", "dir", path, "error", err)
	}
}

// trigger restarts the quiet period.
func (fw *Watcher) trigger(ctx context.Context) {
	fw.eventsMu.Lock()
	defer fw.eventsMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		fw.runMu.Lock()
		defer fw.runMu.Unlock()

		fw.runs++
		fw.log.Info("Regenerating", "run", fw.runs)
		if err := fw.run(ctx); err != nil {
			fw.log.Error("Regeneration failed", "error", err)
			return
		}
		fw.log.Info("Regeneration complete", "run", fw.runs)
	})
}

// Runs returns how many times the step has been started.
func (fw *Watcher) Runs() int {
	fw.runMu.Lock()
	defer fw.runMu.Unlock()
	return fw.runs
}

// skipped reports whether dir is ignored. Hidden directories other than the
// root are skipped.
func skipped(dir, root string) bool {
	if filepath.Clean(dir) == filepath.Clean(root) {
		return false
	}
	base := filepath.Base(dir)
	if _, skip := skipDirs[base]; skip {
		return true
	}
	return strings.HasPrefix(base, ".")
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
