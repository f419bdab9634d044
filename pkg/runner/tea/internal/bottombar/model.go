package bottombar

import (
	"strings"

	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
	ModeCommand
	ModeFilter
	ModeHelp
	ModeDetail
	ModeConfirm
	ModeQuestion
	ModeReport
)

var modeNames = map[Mode]string{
	ModeNormal:   "NORMAL",
	ModeForm:     "FORM",
	ModeCommand:  "CMD",
	ModeFilter:   "FILTER",
	ModeHelp:     "HELP",
	ModeDetail:   "ENTRY",
	ModeConfirm:  "CONFIRM",
	ModeQuestion: "QUESTION",
	ModeReport:   "REPORT",
}

func (m Mode) String() string {
	return modeNames[m]
}

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode            Mode
	helpLine        string
	statusLine      string
	themeLabel      string
	commandInput    string
	commandView     string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	selected        int
	maxSuggestions  int
	theme           theme.FooterTheme
}

// New returns a footer model with sensible defaults.
func New(th theme.FooterTheme) Model {
	return Model{
		mode:           ModeNormal,
		maxSuggestions: 6,
		selected:       -1,
		theme:          th,
	}
}

func (m *Model) SetTheme(th theme.FooterTheme, label string) {
	m.theme = th
	m.themeLabel = label
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeCommand {
		m.filteredOptions = nil
		m.commandInput = ""
		m.commandView = ""
		m.selected = -1
	}
}

func (m Model) Mode() Mode {
	return m.mode
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

func (m Model) Status() string {
	return m.statusLine
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions(m.commandInput)
}

// UpdateCommandInput refreshes the command palette filter and rendered line.
func (m *Model) UpdateCommandInput(value string, view string) {
	m.commandInput = value
	m.commandView = ":" + view
	m.filterSuggestions(value)
}

// StepSuggestion moves the highlighted suggestion by delta, wrapping around.
func (m *Model) StepSuggestion(delta int) {
	n := len(m.filteredOptions)
	if n == 0 {
		m.selected = -1
		return
	}
	if n > m.maxSuggestions {
		n = m.maxSuggestions
	}
	if m.selected < 0 {
		if delta < 0 {
			m.selected = n - 1
		} else {
			m.selected = 0
		}
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// Selected is the highlighted suggestion, if any.
func (m Model) Selected() (CommandOption, bool) {
	if m.selected < 0 || m.selected >= len(m.filteredOptions) {
		return CommandOption{}, false
	}
	return m.filteredOptions[m.selected], true
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	switch m.mode {
	case ModeCommand:
		lines := len(m.filteredOptions)
		if lines > m.maxSuggestions {
			lines = m.maxSuggestions
		}
		// Include command input line.
		return lines + 1
	default:
		return 1
	}
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	switch m.mode {
	case ModeCommand:
		return m.renderCommandMode()
	default:
		return m.renderStatusLine(), 1
	}
}

func (m Model) renderStatusLine() string {
	segments := []string{m.theme.Mode.Render(m.mode.String())}
	if m.helpLine != "" {
		segments = append(segments, m.theme.Help.Render(m.helpLine))
	}
	if m.statusLine != "" {
		segments = append(segments, m.theme.Status.Render(m.statusLine))
	}
	if m.themeLabel != "" {
		segments = append(segments, m.theme.Help.Render("theme "+m.themeLabel))
	}
	return strings.Join(segments, " │ ")
}

func (m Model) renderCommandMode() (string, int) {
	var lines []string
	if len(m.filteredOptions) == 0 && m.statusLine != "" {
		lines = append(lines, m.theme.Status.Render(m.statusLine))
	} else {
		limit := m.maxSuggestions
		if limit > len(m.filteredOptions) {
			limit = len(m.filteredOptions)
		}
		for i := 0; i < limit; i++ {
			opt := m.filteredOptions[i]
			nameStyle, descStyle := m.theme.CommandName, m.theme.CommandDescription
			marker := "  "
			if i == m.selected {
				nameStyle, descStyle = m.theme.CommandSelectedName, m.theme.CommandSelectedDesc
				marker = "→ "
			}
			line := marker + nameStyle.Render(opt.Name)
			if opt.Description != "" {
				line += "  " + descStyle.Render(opt.Description)
			}
			lines = append(lines, line)
		}
	}
	commandLine := m.commandView
	if commandLine == "" {
		commandLine = ":"
	}
	lines = append(lines, commandLine)
	return strings.Join(lines, "\n"), len(lines)
}

func (m *Model) filterSuggestions(prefix string) {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if i := strings.IndexByte(prefix, ' '); i >= 0 {
		prefix = prefix[:i]
	}
	m.filteredOptions = m.filteredOptions[:0]
	for _, opt := range m.commandOptions {
		if strings.HasPrefix(strings.ToLower(opt.Name), prefix) {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
	if m.selected >= len(m.filteredOptions) {
		m.selected = -1
	}
}
