package teaui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/journal/pkg/tags"
)

// filterBox edits the tag filter: typed text is fuzzy matched against the
// known tags and accepted tags collect in input.
type filterBox struct {
	text     textinput.Model
	input    *tags.Input
	selected int
}

func newFilterBox() *filterBox {
	ti := textinput.New()
	ti.Prompt = "#"
	ti.Placeholder = "tag"
	ti.CharLimit = 64
	return &filterBox{text: ti, input: tags.New(nil)}
}

func (b *filterBox) suggestions() []string {
	s := b.input.Suggest(b.text.Value())
	if len(s) > 6 {
		s = s[:6]
	}
	return s
}

// accept adds the highlighted suggestion, or the typed text when nothing
// matches.
func (b *filterBox) accept() error {
	tag := strings.TrimSpace(b.text.Value())
	if s := b.suggestions(); len(s) > 0 {
		i := b.selected
		if i < 0 || i >= len(s) {
			i = 0
		}
		tag = s[i]
	}
	if tag == "" {
		return nil
	}
	b.text.SetValue("")
	b.selected = 0
	return b.input.Add(tag)
}

func (m *Model) openFilter() tea.Cmd {
	b := m.filter
	b.input.Clear()
	for _, t := range m.currentFilter().Tags {
		_ = b.input.Add(t)
	}
	b.text.SetValue("")
	b.selected = 0
	m.setMode(modeFilter)
	return b.text.Focus()
}

func (m *Model) updateFilter(msg tea.KeyPressMsg) tea.Cmd {
	b := m.filter
	switch msg.String() {
	case "esc":
		b.text.Blur()
		m.setMode(modeNormal)
		return nil
	case "tab":
		if err := b.accept(); err != nil {
			m.bottom.SetStatus("ERR: " + err.Error())
		}
		return nil
	case "down", "ctrl+n":
		b.selected = min(b.selected+1, max(len(b.suggestions())-1, 0))
		return nil
	case "up", "ctrl+p":
		b.selected = max(b.selected-1, 0)
		return nil
	case "backspace":
		if b.text.Value() == "" {
			if v := b.input.Value(); len(v) > 0 {
				b.input.Remove(v[len(v)-1])
			}
			return nil
		}
	case "enter":
		if strings.TrimSpace(b.text.Value()) != "" {
			if err := b.accept(); err != nil {
				m.bottom.SetStatus("ERR: " + err.Error())
				return nil
			}
		}
		b.text.Blur()
		m.setMode(modeNormal)
		f := m.currentFilter()
		f.Tags = b.input.Value()
		return m.applyFilter(f)
	}
	var cmd tea.Cmd
	b.text, cmd = b.text.Update(msg)
	b.selected = 0
	return cmd
}

func (m *Model) filterLines() []string {
	b := m.filter
	th := m.th.Panel
	chips := "none"
	if v := b.input.Value(); len(v) > 0 {
		chips = th.Tag.Render("#" + strings.Join(v, " #"))
	}
	lines := []string{th.Field.Render("Tags: ") + chips, b.text.View()}
	for i, s := range b.suggestions() {
		if i == b.selected {
			lines = append(lines, th.Focus.Render("› "+s))
		} else {
			lines = append(lines, "  "+s)
		}
	}
	return lines
}
