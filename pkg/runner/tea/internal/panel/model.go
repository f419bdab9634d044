package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
)

// Model renders a framed panel with a title, body lines and a footer line.
type Model struct {
	title  string
	lines  []string
	footer string
	width  int
	theme  theme.PanelTheme
}

// New returns a panel model using th.
func New(th theme.PanelTheme) Model {
	return Model{theme: th}
}

func (m *Model) SetTheme(th theme.PanelTheme) {
	m.theme = th
}

// SetWidth fixes the outer width; zero lets the content decide.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetFooter sets the dimmed line under the body, used for key hints.
func (m *Model) SetFooter(footer string) {
	m.footer = footer
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
	m.footer = ""
}

func (m Model) Empty() bool {
	return m.title == "" && len(m.lines) == 0
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.theme.Title.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.theme.Body.Render(line))
	}
	if m.footer != "" {
		content = append(content, "", m.theme.Meta.Render(m.footer))
	}
	frame := m.theme.Frame
	if m.width > 0 {
		frame = frame.Width(m.width)
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, lipgloss.Height(view)
}
