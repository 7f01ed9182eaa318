package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/LegacyCodeHQ/modgraph/depgraph"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

type buildFunc func(ctx context.Context) (*depgraph.Graph, error)

// publisher rebuilds the graph and broadcasts the result as a snapshot.
type publisher struct {
	broker *broker
	build  buildFunc
	logger *slog.Logger
	lastID atomic.Int64
	mu     sync.Mutex
}

func (p *publisher) rebuild(ctx context.Context) error {
	// Serialized so a slow build can't publish after a newer one.
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := graphSnapshot{
		ID:        p.lastID.Add(1),
		Timestamp: time.Now().UTC(),
	}

	start := time.Now()
	graph, err := p.build(ctx)
	if err != nil {
		p.logger.Warn("rebuild failed", "build", snapshot.ID, "error", err)
		snapshot.Error = err.Error()
	} else {
		s := graph.Snapshot()
		snapshot.Graph = &s
		p.logger.Info("graph rebuilt", "build", snapshot.ID,
			"modules", len(s.Modules), "cycles", len(s.Cycles), "duration", time.Since(start))
	}

	payload, marshalErr := json.Marshal(snapshot)
	if marshalErr != nil {
		return fmt.Errorf("failed to encode snapshot: %w", marshalErr)
	}
	p.broker.publish(string(payload))
	return err
}

// debouncer runs fn once after a burst of trigger calls has been quiet for
// interval.
type debouncer struct {
	interval time.Duration
	fn       func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(interval time.Duration, fn func()) *debouncer {
	return &debouncer{interval: interval, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// watchAndRebuild watches the given files and calls onChange after each
// burst of writes. Editors often replace files instead of writing them in
// place, so the parent directories are watched and events are filtered by
// name.
func watchAndRebuild(ctx context.Context, files []string, onChange func(), logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched, err := addWatchDirs(watcher.Add, files)
	if err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}

	d := newDebouncer(debounceInterval, onChange)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevantChange(event, watched) {
				continue
			}
			logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			d.trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// addWatchDirs registers the parent directory of every file once and
// returns the set of absolute file paths to react to.
func addWatchDirs(add func(string) error, files []string) (map[string]bool, error) {
	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		watched[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := add(dir); err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
		dirs[dir] = true
	}

	return watched, nil
}

func isRelevantChange(event fsnotify.Event, watched map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return watched[abs]
}
