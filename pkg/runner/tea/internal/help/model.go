package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
)

const (
	minWidth  = 32
	minHeight = 8
)

// Binding is one row of the help: the keys and what they do.
type Binding struct {
	Keys   []string
	Action string
}

// Section groups bindings under a heading.
type Section struct {
	Title    string
	Bindings []Binding
}

// Markdown renders sections as one table per heading.
func Markdown(title string, sections []Section) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n", title)
	}
	for _, s := range sections {
		if len(s.Bindings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n| --- | --- |\n", s.Title)
		for _, k := range s.Bindings {
			keys := make([]string, len(k.Keys))
			for i, key := range k.Keys {
				keys[i] = "`" + cell(key) + "`"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", strings.Join(keys, " "), cell(k.Action))
		}
	}
	return b.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// Model shows the key bindings as glamour-rendered Markdown in a scrollable,
// framed viewport.
type Model struct {
	viewport viewport.Model
	frame    lipgloss.Style
	doc      string
	style    string
	width    int
	height   int
	err      error
}

// New builds the help for sections. style is a glamour standard style such
// as "dark" or "light".
func New(width, height int, style string, sections []Section) *Model {
	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()),
		doc:      Markdown("Journal", sections),
		style:    style,
	}
	m.SetSize(width, height)
	return m
}

// Update scrolls.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// SetStyle switches the glamour style.
func (m *Model) SetStyle(style string) {
	if style == m.style {
		return
	}
	m.style = style
	m.render()
}

// SetSize resizes the frame, never below 32x8, and re-wraps the text.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, minWidth), max(height, minHeight)
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(width-m.frame.GetHorizontalFrameSize(), 1))
	m.viewport.SetHeight(max(height-m.frame.GetVerticalFrameSize(), 1))
	m.render()
}

func (m *Model) render() {
	style := m.style
	if style == "" {
		style = "dark"
	}
	out, err := m.renderMarkdown(style)
	m.err = err
	if err != nil {
		// Plain Markdown still reads fine.
		out = m.doc
	}
	m.viewport.SetContent(strings.TrimRight(out, "\n"))
	m.viewport.GotoTop()
}

func (m *Model) renderMarkdown(style string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(m.viewport.Width(), 10)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(m.doc)
}
