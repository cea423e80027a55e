package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes which document family changed.
type EventType int

const (
	// EventSettingsChanged indicates the settings document was written or
	// removed.
	EventSettingsChanged EventType = iota

	// EventDailyChanged indicates one or more daily documents changed.
	EventDailyChanged
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid losing events. The channel is closed once ctx
// is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	dailyDir := filepath.Join(p.basePath, "daily")
	for _, dir := range []string{p.basePath, dailyDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	for _, dir := range []string{p.basePath, dailyDir} {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// delivery reloads the full snapshot anyway, so a dropped
				// event never leaves the display stale for long.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Refresh both feeds when we cannot classify the change.
				throttle.Enqueue(Event{Type: EventSettingsChanged}, send)
				throttle.Enqueue(Event{Type: EventDailyChanged}, send)
				_ = err
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				p.classify(evt.Name, func(ev Event) {
					throttle.Enqueue(ev, send)
				})
			}
		}
	}()

	return events, nil
}

// classify maps a changed path to the feed(s) it affects.
func (p *persistence) classify(path string, emit func(Event)) {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		emit(Event{Type: EventSettingsChanged})
		emit(Event{Type: EventDailyChanged})
		return
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	switch {
	case parts[0] == "daily":
		emit(Event{Type: EventDailyChanged})
	case strings.HasPrefix(parts[0], settingsKey):
		emit(Event{Type: EventSettingsChanged})
	default:
		// Temp files and unknown paths trigger a full refresh.
		emit(Event{Type: EventSettingsChanged})
		emit(Event{Type: EventDailyChanged})
	}
}

// eventThrottle coalesces rapid change notifications so the display redraws
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
