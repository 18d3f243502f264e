package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of filesystem events (editors often write
// a file several times in quick succession) into one run.
const watchDebounce = 500 * time.Millisecond

// Watch re-runs the hook set whenever files under the repository change.
// onResult is invoked after every run. It blocks until ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, event string, opts Options, onResult func(*RunResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := r.addWatchDirs(watcher, r.root); err != nil {
		return err
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if r.ignoreWatchEvent(ev.Name) {
				continue
			}
			// New directories need their own watch
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = r.addWatchDirs(watcher, ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.WithField("error", err).Warn("Watcher error")

		case <-pending:
			result, err := r.Run(ctx, event, opts)
			if err != nil {
				r.log.WithField("error", err).Warn("Watched run failed to start")
				continue
			}
			onResult(result)
		}
	}
}

func (r *Runner) addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (r *Runner) ignoreWatchEvent(name string) bool {
	rel, err := filepath.Rel(r.root, name)
	if err != nil {
		return true
	}
	return rel == ".git" || strings.HasPrefix(rel, ".git"+string(filepath.Separator))
}
