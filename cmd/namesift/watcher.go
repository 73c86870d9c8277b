package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer coalesces bursts of triggers into one call of fn after delay.
type debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	fn      func()
	running sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn, restarting the delay if a call is already pending.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.running.Add(1)
	d.mu.Unlock()

	defer d.running.Done()
	d.fn()
}

// Cancel drops a pending call and waits for a running one to return.
// Triggers after Cancel are ignored.
func (d *debouncer) Cancel() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.running.Wait()
}

// fileWatcher reports changes to a single file. It watches the parent
// directory so editors that replace the file by rename are still seen.
type fileWatcher struct {
	watcher   *fsnotify.Watcher
	path      string
	debouncer *debouncer
	log       *slog.Logger
}

func newFileWatcher(path string, delay time.Duration, onChanged func(), log *slog.Logger) (*fileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	return &fileWatcher{
		watcher:   watcher,
		path:      absPath,
		debouncer: newDebouncer(delay, onChanged),
		log:       log,
	}, nil
}

// Run dispatches events until ctx is canceled or the watcher is closed.
func (fw *fileWatcher) Run(ctx context.Context) error {
	defer fw.debouncer.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.log.Debug("input changed", "file", event.Name, "op", event.Op.String())
				fw.debouncer.Trigger()
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watcher error", "error", err)
		}
	}
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.watcher.Close()
}
