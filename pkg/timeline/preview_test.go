package timeline

import (
	"sync"
	"testing"
	"time"
)

type fakeTimer struct {
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type scheduled struct {
	d     time.Duration
	msg   any
	timer *fakeTimer
}

type fakeScheduler struct {
	calls []scheduled
}

func (f *fakeScheduler) Schedule(d time.Duration, msg any) Timer {
	t := &fakeTimer{}
	f.calls = append(f.calls, scheduled{d: d, msg: msg, timer: t})
	return t
}

func (f *fakeScheduler) last() scheduled {
	return f.calls[len(f.calls)-1]
}

func visibleCount(c *Controller, ids ...string) int {
	n := 0
	for _, id := range ids {
		if c.Active() == id {
			n++
		}
	}
	return n
}

func TestEnterShowsSinglePreview(t *testing.T) {
	c := NewController(&fakeScheduler{})
	c.Enter("a", Geometry{Anchor: 10, Width: 20, Container: 80})
	c.Enter("b", Geometry{Anchor: 40, Width: 20, Container: 80})

	p, ok := c.Visible()
	if !ok || p.ID != "b" {
		t.Fatalf("expected b visible, got %+v (%v)", p, ok)
	}
	if c.State("a") != Idle {
		t.Fatalf("expected a hidden immediately, got %s", c.State("a"))
	}
	if n := visibleCount(c, "a", "b"); n != 1 {
		t.Fatalf("expected exactly one visible preview, got %d", n)
	}
}

func TestLeaveDefersHide(t *testing.T) {
	s := &fakeScheduler{}
	c := NewController(s, WithHideDelay(250*time.Millisecond))
	c.Enter("a", Geometry{Anchor: 40, Width: 20, Container: 80})
	c.Leave("a")

	if _, ok := c.Visible(); !ok {
		t.Fatalf("expected preview to stay visible until the delay passes")
	}
	if c.State("a") != Pending {
		t.Fatalf("expected pending state, got %s", c.State("a"))
	}
	call := s.last()
	if call.d != 250*time.Millisecond {
		t.Fatalf("expected hide delay 250ms, got %v", call.d)
	}
	if !c.Expire(call.msg.(HideMsg)) {
		t.Fatalf("expected hide to apply")
	}
	if _, ok := c.Visible(); ok {
		t.Fatalf("expected preview hidden after expiry")
	}
	if c.State("a") != Idle {
		t.Fatalf("expected idle, got %s", c.State("a"))
	}
}

func TestReenterCancelsPendingHide(t *testing.T) {
	s := &fakeScheduler{}
	c := NewController(s)
	c.Enter("a", Geometry{Anchor: 40, Width: 20, Container: 80})
	c.Leave("a")
	first := s.last()

	c.Enter("a", Geometry{Anchor: 40, Width: 20, Container: 80})
	if !first.timer.stopped {
		t.Fatalf("expected pending timer to be stopped")
	}
	if c.Expire(first.msg.(HideMsg)) {
		t.Fatalf("expected stale hide to be ignored")
	}
	if c.Active() != "a" {
		t.Fatalf("expected a to remain active")
	}
}

func TestHoldKeepsPreviewWhenPointerMovesOntoIt(t *testing.T) {
	s := &fakeScheduler{}
	c := NewController(s)
	c.Enter("a", Geometry{Anchor: 40, Width: 20, Container: 80})
	c.Leave("a")
	pending := s.last()
	if !c.Hold() {
		t.Fatalf("expected hold to succeed with a visible preview")
	}
	if c.Expire(pending.msg.(HideMsg)) {
		t.Fatalf("expected held preview to ignore the old hide")
	}
	if c.State("a") != Hovering {
		t.Fatalf("expected hovering after hold, got %s", c.State("a"))
	}
}

func TestEnterOtherCancelsPreviousPending(t *testing.T) {
	s := &fakeScheduler{}
	c := NewController(s)
	c.Enter("a", Geometry{Anchor: 10, Width: 20, Container: 80})
	c.Leave("a")
	pending := s.last()
	c.Enter("b", Geometry{Anchor: 60, Width: 20, Container: 80})
	if !pending.timer.stopped {
		t.Fatalf("expected a's hide timer to be cancelled")
	}
	if c.Expire(pending.msg.(HideMsg)) {
		t.Fatalf("expected a's late hide to be ignored")
	}
	if c.Active() != "b" {
		t.Fatalf("expected b to stay visible, got %q", c.Active())
	}
}

func TestLeaveWithoutEnterIsNoop(t *testing.T) {
	s := &fakeScheduler{}
	c := NewController(s)
	c.Leave("ghost")
	if len(s.calls) != 0 {
		t.Fatalf("expected nothing scheduled")
	}
}

func TestCloseCancelsTimers(t *testing.T) {
	s := &fakeScheduler{}
	c := NewController(s)
	c.Enter("a", Geometry{Anchor: 10, Width: 20, Container: 80})
	c.Leave("a")
	c.Close()
	if !s.last().timer.stopped {
		t.Fatalf("expected close to stop pending timers")
	}
	if _, ok := c.Visible(); ok {
		t.Fatalf("expected nothing visible after close")
	}
}

func TestOffsetClamping(t *testing.T) {
	cases := []struct {
		name                            string
		anchor, width, container, inset float64
		want                            float64
	}{
		{"centred", 40, 20, 80, 1, 30},
		{"left edge", 2, 20, 80, 1, 1},
		{"right edge", 79, 20, 80, 1, 59},
		{"narrow container", 5, 20, 10, 1, 1},
		{"zero width container", 0, 20, 0, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Offset(c.anchor, c.width, c.container, c.inset); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestEnterOnUnlaidContainer(t *testing.T) {
	c := NewController(nil)
	p := c.Enter("a", Geometry{Anchor: 0, Width: 30, Container: 0})
	if p.Offset != DefaultInset {
		t.Fatalf("expected inset placement, got %v", p.Offset)
	}
}

func TestLoopSchedulerDeliversAndStops(t *testing.T) {
	var mu sync.Mutex
	var got []any
	done := make(chan struct{}, 1)
	s := NewLoopScheduler(nil)
	s.Bind(func(m any) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
		done <- struct{}{}
	})

	stopped := s.Schedule(time.Hour, "never")
	s.Schedule(time.Millisecond, "soon")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scheduled message")
	}
	if !stopped.Stop() {
		t.Fatalf("expected long timer to be stoppable")
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", s.Pending())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "soon" {
		t.Fatalf("unexpected deliveries %v", got)
	}
}

func TestLoopSchedulerStopAll(t *testing.T) {
	s := NewLoopScheduler(func(any) { t.Errorf("nothing should be delivered after StopAll") })
	s.Schedule(20*time.Millisecond, "a")
	s.Schedule(20*time.Millisecond, "b")
	s.StopAll()
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers")
	}
	time.Sleep(60 * time.Millisecond)
}

func TestLoopSchedulerPost(t *testing.T) {
	var got []any
	s := NewLoopScheduler(nil)
	s.Post("dropped")
	s.Bind(func(m any) { got = append(got, m) })
	s.Post("now")
	if len(got) != 1 || got[0] != "now" {
		t.Fatalf("expected only the bound post, got %v", got)
	}
}
