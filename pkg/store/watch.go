package store

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// EventType describes which preference changed on disk.
type EventType int

const (
	// EventThemeChanged fires when the theme file is written, for example by
	// `journal theme` running in another terminal.
	EventThemeChanged EventType = iota

	// EventFilterChanged fires when the stored filter changes.
	EventFilterChanged

	// EventDraftChanged fires when the saved draft is written or cleared.
	EventDraftChanged

	// EventInvalidated means the change could not be classified and callers
	// should re-read everything they care about.
	EventInvalidated
)

// Event is emitted by Watch when stored preferences change.
type Event struct {
	Type EventType
	Key  string
}

// Watcher is implemented by preference stores that can report changes made
// by other processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// settle is how long a key must stay quiet before its event is sent. diskv
// writes through a temp file, so one save is several fs events.
const settle = 100 * time.Millisecond

// Watch streams preference changes until ctx is cancelled. Events are
// dropped, not queued, while the consumer is busy; each event means "re-read
// this key", so a later one covers a dropped one. The channel is closed when
// ctx is done or the watcher fails.
func (p *DiskStore) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: preference base path unknown")
	}

	// Every key lives one level down; create those directories now so they
	// are watched before the first write.
	dirs := []string{p.basePath}
	for _, key := range []string{keyTheme, keyFilter, keyDraft} {
		dir := filepath.Join(p.basePath, filepath.FromSlash(path.Dir(key)))
		if !contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "store: create watcher")
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			_ = watcher.Close()
			return nil, pkgerrors.Wrapf(err, "store: create %s", dir)
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, pkgerrors.Wrapf(err, "store: watch %s", dir)
		}
	}

	events := make(chan Event, 16)
	send := func(ev Event) {
		select {
		case events <- ev:
		default:
			p.log.Debug("store: dropped preference event", zap.String("key", ev.Key))
		}
	}
	pending := newCoalescer(settle, send)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("store: watcher close", zap.Error(err))
			}
		}()
		defer pending.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warn("store: watcher error", zap.Error(err))
				pending.Add(Event{Type: EventInvalidated})
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op == fsnotify.Chmod {
					continue
				}
				pending.Add(p.eventForPath(evt.Name))
			}
		}
	}()

	return events, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// eventForPath maps a file under the store back to the preference it holds.
// diskv's temp files and anything else unknown invalidate everything.
func (p *DiskStore) eventForPath(name string) Event {
	rel, err := filepath.Rel(p.basePath, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return Event{Type: EventInvalidated}
	}
	key := filepath.ToSlash(rel)
	switch key {
	case keyTheme:
		return Event{Type: EventThemeChanged, Key: key}
	case keyFilter:
		return Event{Type: EventFilterChanged, Key: key}
	case keyDraft:
		return Event{Type: EventDraftChanged, Key: key}
	}
	return Event{Type: EventInvalidated}
}

// coalescer holds events until no new event for the same key arrived for
// delay, then sends the latest one.
type coalescer struct {
	mu     sync.Mutex
	delay  time.Duration
	send   func(Event)
	timers map[string]*time.Timer
	latest map[string]Event
	closed bool
}

func newCoalescer(delay time.Duration, send func(Event)) *coalescer {
	return &coalescer{
		delay:  delay,
		send:   send,
		timers: make(map[string]*time.Timer),
		latest: make(map[string]Event),
	}
}

func (c *coalescer) Add(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	k := ev.Key
	c.latest[k] = ev
	if t, ok := c.timers[k]; ok {
		t.Reset(c.delay)
		return
	}
	c.timers[k] = time.AfterFunc(c.delay, func() { c.fire(k) })
}

// fire sends under the lock so Stop can not race a send; send never blocks.
func (c *coalescer) fire(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ev, ok := c.latest[k]
	delete(c.latest, k)
	delete(c.timers, k)
	if ok && !c.closed {
		c.send(ev)
	}
}

// Stop cancels every held event.
func (c *coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for k, t := range c.timers {
		t.Stop()
		delete(c.timers, k)
	}
}
