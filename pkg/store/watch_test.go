package store

import (
	"context"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string       { return t.path }
func (t testConfig) Server() string         { return DefaultServer }
func (t testConfig) Timeout() time.Duration { return DefaultTimeout }
func (t testConfig) Env() string            { return "test" }
func (t testConfig) LogFile() string        { return "" }

func TestWatchEmitsThemeChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load preferences: %v", err)
	}
	// Create prefs/ up front so the watcher subscribes to it immediately.
	if err := p.SetTheme(Dark); err != nil {
		t.Fatalf("seed theme: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before writing.
	time.Sleep(50 * time.Millisecond)

	other, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load second store: %v", err)
	}
	if err := other.SetTheme(Light); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventThemeChanged || evt.Type == EventInvalidated {
				if got := p.Theme(); got != Light {
					t.Fatalf("expected re-read theme to be light, got %s", got)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for theme change event")
		}
	}
}

func TestEventForPath(t *testing.T) {
	p := &DiskStore{basePath: "/tmp/journal"}
	cases := map[string]EventType{
		"/tmp/journal/prefs/theme":  EventThemeChanged,
		"/tmp/journal/prefs/filter": EventFilterChanged,
		"/tmp/journal/drafts/new":   EventDraftChanged,
		"/tmp/journal/other":        EventInvalidated,
		"/elsewhere/prefs/theme":    EventInvalidated,
	}
	for path, want := range cases {
		if got := p.eventForPath(path).Type; got != want {
			t.Fatalf("%s: expected %v, got %v", path, want, got)
		}
	}
}

func TestCoalescerSendsLatestPerKey(t *testing.T) {
	got := make(chan Event, 4)
	c := newCoalescer(20*time.Millisecond, func(e Event) { got <- e })
	c.Add(Event{Type: EventInvalidated, Key: keyTheme})
	c.Add(Event{Type: EventThemeChanged, Key: keyTheme})
	c.Add(Event{Type: EventDraftChanged, Key: keyDraft})

	seen := map[string]EventType{}
	deadline := time.After(time.Second)
	for len(seen) < 2 {
		select {
		case e := <-got:
			seen[e.Key] = e.Type
		case <-deadline:
			t.Fatalf("timed out, got %v", seen)
		}
	}
	if seen[keyTheme] != EventThemeChanged {
		t.Fatalf("expected the latest theme event, got %v", seen[keyTheme])
	}
	c.Stop()
	c.Add(Event{Type: EventFilterChanged, Key: keyFilter})
	select {
	case e := <-got:
		t.Fatalf("expected nothing after stop, got %+v", e)
	case <-time.After(60 * time.Millisecond):
	}
}
