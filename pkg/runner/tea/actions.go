package teaui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/runner/tea/internal/views/report"
	"tableflip.dev/journal/pkg/timeutil"
)

type deletedMsg struct{ err error }
type questionMsg struct {
	question string
	err      error
}
type reportMsg struct {
	label  string
	result app.ReportResult
	err    error
}

func (m *Model) openDetail(e *entry.Entry) {
	m.detail = e
	m.setMode(modeDetail)
}

func (m *Model) updateDetail(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.detail = nil
		m.setMode(modeNormal)
	case "e":
		return m.editEntry(m.detail.ID)
	case "d":
		m.askDelete(m.detail)
	}
	return nil
}

func (m *Model) detailLines(e *entry.Entry) []string {
	th := m.th.Panel
	lines := []string{th.Meta.Render(e.EntryDate.Display())}
	if len(e.Tags) > 0 {
		lines = append(lines, th.Tag.Render("#"+strings.Join(e.Tags, " #")))
	}
	lines = append(lines, "")
	text := entry.PlainText(e.Content)
	lines = append(lines, strings.Split(text, "\n")...)
	if len(e.Media) > 0 {
		lines = append(lines, "")
		for _, item := range e.Media {
			lines = append(lines, th.Meta.Render("▸ "+item.String()))
		}
	}
	if !e.UpdatedAt.IsZero() && !e.UpdatedAt.Equal(e.CreatedAt.Time) {
		lines = append(lines, "", th.Meta.Render("edited "+e.UpdatedAt.Display()))
	}
	return lines
}

func (m *Model) askDelete(e *entry.Entry) {
	m.confirm = e
	m.setMode(modeConfirm)
}

func (m *Model) updateConfirm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		return m.deleteConfirmed()
	case "n", "N", "esc", "q":
		m.confirm = nil
		if m.detail != nil {
			m.setMode(modeDetail)
		} else {
			m.setMode(modeNormal)
		}
	}
	return nil
}

// deleteConfirmed issues the delete. The list is refreshed by the service
// once the server confirmed it.
func (m *Model) deleteConfirmed() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil || m.confirm == nil {
		return nil
	}
	id := m.confirm.ID
	return m.busy(ctlDelete, "Deleting...", func() tea.Msg {
		return deletedMsg{err: svc.Delete(ctx, id)}
	})
}

func (m *Model) openQuestion() tea.Cmd {
	m.setMode(modeQuestion)
	if m.question != "" {
		return nil
	}
	return m.askQuestion()
}

func (m *Model) askQuestion() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	return m.busy(ctlQuestion, "Generating...", func() tea.Msg {
		q, err := svc.Question(ctx, "")
		return questionMsg{question: q, err: err}
	})
}

func (m *Model) updateQuestion(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.setMode(modeNormal)
	case "g", "r":
		return m.askQuestion()
	case "n":
		// Start an entry from the question.
		q := m.question
		cmd := m.newEntry()
		if q != "" {
			m.form.inputs[fieldTitle].SetValue(q)
		}
		return cmd
	}
	return nil
}

func (m *Model) renderQuestion() string {
	if m.question == "" {
		return ""
	}
	out, err := printers.RenderQuestion(m.question, m.modalWidth()-4, m.th.Glamour)
	if err != nil {
		return m.question
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) openReport(window string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	now := time.Now()
	since, label, err := timeutil.Since(window, now)
	if err != nil {
		m.bottom.SetStatus("ERR: " + err.Error())
		return nil
	}
	return func() tea.Msg {
		res, err := svc.Report(ctx, since, now)
		return reportMsg{label: report.Window(label, since, now), result: res, err: err}
	}
}

func (m *Model) updateReport(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc", "q":
		m.report.Clear()
		m.setMode(modeNormal)
	case "j", "down":
		m.report.ScrollLines(1)
	case "k", "up":
		m.report.ScrollLines(-1)
	case "pgdown", "space":
		m.report.ScrollPages(1)
	case "pgup":
		m.report.ScrollPages(-1)
	case "g", "home":
		m.report.ScrollHome()
	case "G", "end":
		m.report.ScrollEnd()
	}
}
