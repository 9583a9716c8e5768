package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce collapses the burst of events an editor save produces.
var watchDebounce = 200 * time.Millisecond

// watch runs the filter once, then again after every change to the input
// file, until ctx is cancelled. A failing run is reported and the watch
// continues; only watcher setup errors are returned.
func (r *filterRun) watch(ctx context.Context) error {
	target, err := filepath.Abs(r.specPath)
	if err != nil {
		return fmt.Errorf("filter: watch: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("filter: watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file on save, so the directory is watched.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("filter: watch %s: %w", filepath.Dir(target), err)
	}

	r.runReported()
	r.logger.Info("watching for changes", zap.String("path", target))

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("watch stopped", zap.String("path", target))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			r.logger.Debug("input changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watch error", zap.Error(err))

		case <-debounce.C:
			r.runReported()
		}
	}
}

// runReported runs the filter and prints a failure instead of returning it.
func (r *filterRun) runReported() {
	if err := r.once(); err != nil {
		Writef(stderr, "Error: %v\n", err)
	}
}
