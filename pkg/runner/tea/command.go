package teaui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/journal/pkg/store"
	"tableflip.dev/journal/pkg/tags"
	"tableflip.dev/journal/pkg/timeline"
	"tableflip.dev/journal/pkg/timeutil"
)

var paletteCommands = []bottombar.CommandOption{
	{Name: "new", Description: "Write a new entry"},
	{Name: "edit", Description: "Edit the focused entry"},
	{Name: "delete", Description: "Delete the focused entry"},
	{Name: "filter", Description: "Filter by tags"},
	{Name: "clear", Description: "Clear tag and date filters"},
	{Name: "range", Description: "Limit the timeline: range START [END]"},
	{Name: "report", Description: "Entries over a window: report [1w|1mo|...]"},
	{Name: "question", Description: "Ask for a reflection prompt"},
	{Name: "theme", Description: "Switch theme: theme [dark|light]"},
	{Name: "reload", Description: "Reload entries and tags"},
	{Name: "help", Description: "Show key bindings"},
	{Name: "quit", Description: "Exit"},
}

func (m *Model) enterCommandMode() tea.Cmd {
	m.input.SetValue("")
	m.setMode(modeCommand)
	m.bottom.UpdateCommandInput("", m.input.View())
	return m.input.Focus()
}

func (m *Model) exitCommandMode() {
	m.input.Blur()
	m.input.SetValue("")
	m.bottom.UpdateCommandInput("", "")
	m.setMode(modeNormal)
}

func (m *Model) updateCommand(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.exitCommandMode()
		return nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		if opt, ok := m.bottom.Selected(); ok && !strings.Contains(line, " ") {
			line = opt.Name
		}
		m.exitCommandMode()
		return m.runCommand(line)
	case "tab", "down", "ctrl+n":
		m.bottom.StepSuggestion(1)
		return nil
	case "shift+tab", "up", "ctrl+p":
		m.bottom.StepSuggestion(-1)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.bottom.UpdateCommandInput(m.input.Value(), m.input.View())
	return cmd
}

// runCommand executes one palette line, e.g. "range 2024-01-01 2024-03-31".
func (m *Model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "new", "n":
		return m.newEntry()
	case "edit", "e":
		if e := m.focusedEntry(); e != nil {
			return m.editEntry(e.ID)
		}
	case "delete", "rm":
		if e := m.focusedEntry(); e != nil {
			m.askDelete(e)
		}
	case "filter", "f":
		if len(args) > 0 {
			f := m.currentFilter()
			f.Tags = tags.Split(strings.Join(args, ","))
			return m.applyFilter(f)
		}
		return m.openFilter()
	case "clear":
		return m.applyFilter(client.Filter{})
	case "range":
		f := m.currentFilter()
		f.Start, f.End = "", ""
		if len(args) > 0 {
			f.Start = args[0]
		}
		if len(args) > 1 {
			f.End = args[1]
		}
		if _, err := timeline.ParseRange(f.Start, f.End); err != nil {
			m.bottom.SetStatus("ERR: " + err.Error())
			return nil
		}
		return m.applyFilter(f)
	case "report":
		window := timeutil.DefaultWindow
		if len(args) > 0 {
			window = args[0]
		}
		return m.openReport(window)
	case "question":
		return m.openQuestion()
	case "theme":
		if len(args) == 0 {
			return m.toggleTheme()
		}
		t, err := store.ParseTheme(args[0])
		if err != nil {
			m.bottom.SetStatus("ERR: " + err.Error())
			return nil
		}
		if t != m.th.Name {
			return m.toggleTheme()
		}
	case "reload", "r":
		return tea.Batch(m.reload(), m.loadTags())
	case "help", "?":
		m.setMode(modeHelp)
	case "quit", "q", "exit":
		m.Teardown()
		return tea.Quit
	default:
		m.bottom.SetStatus("unknown command: " + fields[0])
	}
	return nil
}

func (m *Model) currentFilter() client.Filter {
	if m.svc == nil {
		return client.Filter{}
	}
	return m.svc.Filter()
}

// applyFilter sets f on the service, remembers it and reloads.
func (m *Model) applyFilter(f client.Filter) tea.Cmd {
	if m.svc == nil {
		return nil
	}
	m.svc.SetFilter(f)
	m.preview.Reset()
	m.cursor = -1
	cmds := []tea.Cmd{m.reload()}
	if prefs := m.prefs; prefs != nil {
		cmds = append(cmds, func() tea.Msg {
			if err := prefs.SetFilter(store.Filter{Tags: f.Tags, Start: f.Start, End: f.End}); err != nil {
				return errMsg{err}
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}
