package timeline

import "time"

const (
	// DefaultHideDelay lets the pointer cross from a marker into its preview
	// without the preview disappearing.
	DefaultHideDelay = 300 * time.Millisecond
	// DefaultInset keeps previews off the container edges, in cells.
	DefaultInset = 1.0
)

// State is where a marker sits in the hover lifecycle.
type State int

const (
	Idle State = iota
	Hovering
	Pending
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Pending:
		return "pending"
	default:
		return "idle"
	}
}

// Geometry describes where a preview is anchored. All values share one unit
// (cells in a terminal).
type Geometry struct {
	// Anchor is the marker's horizontal offset inside the container.
	Anchor float64
	// Width is the preview's width.
	Width float64
	// Container is the width the preview must stay inside.
	Container float64
}

// Preview is the one visible preview.
type Preview struct {
	ID     string
	Offset float64
	Width  float64
}

// HideMsg is delivered by the scheduler when a deferred hide comes due.
type HideMsg struct {
	ID  string
	Gen uint64
}

type pendingHide struct {
	gen   uint64
	timer Timer
}

// Controller tracks hover state for timeline markers. At most one preview is
// visible at a time. It is not safe for concurrent use; drive it from the
// event loop only.
type Controller struct {
	sched Scheduler
	delay time.Duration
	inset float64

	states  map[string]State
	visible *Preview
	pending map[string]pendingHide
	gen     uint64
}

type ControllerOption func(*Controller)

func WithHideDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.delay = d }
}

func WithInset(inset float64) ControllerOption {
	return func(c *Controller) { c.inset = inset }
}

func NewController(sched Scheduler, opts ...ControllerOption) *Controller {
	c := &Controller{
		sched:   sched,
		delay:   DefaultHideDelay,
		inset:   DefaultInset,
		states:  make(map[string]State),
		pending: make(map[string]pendingHide),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Offset places a preview of width w centred on anchor, then pulls it back
// inside [inset, container-inset]. When the container is too narrow (or not
// laid out yet) the preview lands on the inset.
func Offset(anchor, width, container, inset float64) float64 {
	left := anchor - width/2
	if left < inset {
		left = inset
	}
	if left+width > container-inset {
		left = container - inset - width
	}
	if left < inset {
		left = inset
	}
	return left
}

// Enter shows the preview for id, hiding any other preview immediately.
func (c *Controller) Enter(id string, g Geometry) Preview {
	c.cancel(id)
	if c.visible != nil && c.visible.ID != id {
		c.hide(c.visible.ID)
	}
	p := Preview{
		ID:     id,
		Offset: Offset(g.Anchor, g.Width, g.Container, c.inset),
		Width:  g.Width,
	}
	c.visible = &p
	c.states[id] = Hovering
	return p
}

// Hold keeps the visible preview up, cancelling a pending hide. It is used
// when the pointer moves from the marker onto the preview itself.
func (c *Controller) Hold() bool {
	if c.visible == nil {
		return false
	}
	id := c.visible.ID
	c.cancel(id)
	c.states[id] = Hovering
	return true
}

// Leave schedules the preview for id to hide after the hide delay.
func (c *Controller) Leave(id string) {
	if c.states[id] != Hovering {
		return
	}
	c.gen++
	msg := HideMsg{ID: id, Gen: c.gen}
	c.states[id] = Pending
	var t Timer
	if c.sched != nil {
		t = c.sched.Schedule(c.delay, msg)
	}
	c.pending[id] = pendingHide{gen: msg.Gen, timer: t}
}

// Expire applies a deferred hide. Stale messages, from hides that were
// cancelled or superseded, are ignored and Expire reports false.
func (c *Controller) Expire(m HideMsg) bool {
	p, ok := c.pending[m.ID]
	if !ok || p.gen != m.Gen {
		return false
	}
	delete(c.pending, m.ID)
	c.hide(m.ID)
	return true
}

// Visible returns the preview currently shown.
func (c *Controller) Visible() (Preview, bool) {
	if c.visible == nil {
		return Preview{}, false
	}
	return *c.visible, true
}

// Active is the id of the marker owning the visible preview.
func (c *Controller) Active() string {
	if c.visible == nil {
		return ""
	}
	return c.visible.ID
}

func (c *Controller) State(id string) State {
	return c.states[id]
}

// Reset hides everything and cancels pending hides, e.g. after the markers
// were re-laid out.
func (c *Controller) Reset() {
	for id := range c.pending {
		c.cancel(id)
	}
	c.visible = nil
	c.states = make(map[string]State)
}

// Close cancels every outstanding timer. Call it on view teardown.
func (c *Controller) Close() {
	c.Reset()
}

func (c *Controller) hide(id string) {
	c.cancel(id)
	c.states[id] = Idle
	if c.visible != nil && c.visible.ID == id {
		c.visible = nil
	}
}

func (c *Controller) cancel(id string) {
	p, ok := c.pending[id]
	if !ok {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	delete(c.pending, id)
}
