package teaui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// busyDoneMsg restores a control once its call returned. inner carries the
// call's own result.
type busyDoneMsg struct {
	ctl   control
	label string
	inner tea.Msg
}

// busy disables ctl and relabels it while fn runs off the loop. It returns
// nil when ctl is already busy, so a second press does nothing. The control
// is restored on every exit path, a panic in fn included.
func (m *Model) busy(ctl control, label string, fn func() tea.Msg) tea.Cmd {
	b := m.buttons[ctl]
	if b.Disabled {
		return nil
	}
	prev := b.Label()
	b.SetDisabled(true)
	b.SetLabel(label)
	return func() (out tea.Msg) {
		var inner tea.Msg
		defer func() {
			if r := recover(); r != nil {
				inner = errMsg{fmt.Errorf("%s: %v", prev, r)}
			}
			out = busyDoneMsg{ctl: ctl, label: prev, inner: inner}
		}()
		inner = fn()
		return nil
	}
}

// hints renders the action buttons for the footer of a modal.
func (m *Model) hints(keys map[control]string, order ...control) string {
	out := ""
	for _, c := range order {
		b := m.buttons[c]
		style := m.th.Button.Enabled
		if b.Disabled {
			style = m.th.Button.Disabled
		}
		if out != "" {
			out += "  "
		}
		out += style.Render(fmt.Sprintf("[%s] %s", keys[c], b.Label()))
	}
	return out
}
