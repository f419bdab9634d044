package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/journal/pkg/notify"
	"tableflip.dev/journal/pkg/timeline"
)

type toast struct {
	note  notify.Note
	gen   uint64
	timer timeline.Timer
}

func noteInfo(msg string) notify.Note {
	return notify.Note{Message: msg}
}

// showToast replaces the current toast. It expires after notify.Duration;
// without a loop it stays until the next one.
func (m *Model) showToast(n notify.Note) tea.Cmd {
	var gen uint64
	if m.toast != nil {
		gen = m.toast.gen
		if m.toast.timer != nil {
			m.toast.timer.Stop()
		}
	}
	t := &toast{note: n, gen: gen + 1}
	if m.loop != nil {
		t.timer = m.loop.Schedule(notify.Duration, toastExpireMsg{gen: t.gen})
	}
	m.toast = t
	return nil
}

func (m *Model) toastView() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.note.IsError {
		return m.th.Toast.Error.Render("✘ " + m.toast.note.Message)
	}
	return m.th.Toast.Info.Render("✔ " + m.toast.note.Message)
}
