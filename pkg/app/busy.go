package app

// Control is a trigger (button, key hint) that can be disabled while the
// work it started is in flight.
type Control interface {
	Label() string
	SetLabel(string)
	SetDisabled(bool)
}

// WithBusy disables c and shows busyLabel while fn runs. The previous label
// and enabled state come back on every exit path, panics included.
func WithBusy(c Control, busyLabel string, fn func() error) error {
	if c == nil {
		return fn()
	}
	prev := c.Label()
	c.SetDisabled(true)
	c.SetLabel(busyLabel)
	defer func() {
		c.SetLabel(prev)
		c.SetDisabled(false)
	}()
	return fn()
}

// Button is a minimal Control, used by the CLI and as the state behind the
// interactive program's action hints.
type Button struct {
	Text     string
	Disabled bool
}

func (b *Button) Label() string      { return b.Text }
func (b *Button) SetLabel(s string)  { b.Text = s }
func (b *Button) SetDisabled(d bool) { b.Disabled = d }
