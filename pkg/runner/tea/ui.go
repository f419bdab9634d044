package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/notify"
	"tableflip.dev/journal/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/journal/pkg/runner/tea/internal/help"
	"tableflip.dev/journal/pkg/runner/tea/internal/panel"
	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
	"tableflip.dev/journal/pkg/runner/tea/internal/views/report"
	"tableflip.dev/journal/pkg/store"
	"tableflip.dev/journal/pkg/timeline"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeForm
	modeCommand
	modeFilter
	modeHelp
	modeDetail
	modeConfirm
	modeQuestion
	modeReport
)

var barModes = map[mode]bottombar.Mode{
	modeNormal:   bottombar.ModeNormal,
	modeForm:     bottombar.ModeForm,
	modeCommand:  bottombar.ModeCommand,
	modeFilter:   bottombar.ModeFilter,
	modeHelp:     bottombar.ModeHelp,
	modeDetail:   bottombar.ModeDetail,
	modeConfirm:  bottombar.ModeConfirm,
	modeQuestion: bottombar.ModeQuestion,
	modeReport:   bottombar.ModeReport,
}

var helpLines = map[mode]string{
	modeNormal:   "←/→ markers · enter open · n new · / filter · ? help",
	modeForm:     "tab next field · ctrl+s save · esc cancel",
	modeCommand:  "tab complete · enter run · esc cancel",
	modeFilter:   "tab accept suggestion · enter apply · backspace remove · esc cancel",
	modeHelp:     "j/k scroll · esc close",
	modeDetail:   "e edit · d delete · esc close",
	modeConfirm:  "y delete · n cancel",
	modeQuestion: "g ask again · esc close",
	modeReport:   "j/k scroll · pgup/pgdown · esc close",
}

// Loop is how the model reaches its event loop from timers and goroutines.
// *timeline.LoopScheduler is the production implementation.
type Loop interface {
	timeline.Scheduler
	Post(msg any)
	StopAll()
}

// control names a button that is disabled while its call runs.
type control int

const (
	ctlSave control = iota
	ctlDelete
	ctlQuestion
)

// entry item for the list pane
type entryItem struct{ e *entry.Entry }

func (it entryItem) Title() string {
	return it.e.EntryDate.Local().Format("Jan 02 2006") + "  " + displayTitle(it.e)
}

func (it entryItem) Description() string {
	var parts []string
	if len(it.e.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(it.e.Tags, " #"))
	}
	if ex := entry.Excerpt(it.e.Content, 60); ex != "" {
		parts = append(parts, ex)
	}
	return entry.Sanitize(strings.Join(parts, "  "))
}

func (it entryItem) FilterValue() string { return it.e.Title }

func displayTitle(e *entry.Entry) string {
	t := strings.TrimSpace(entry.Sanitize(e.Title))
	if t == "" {
		return "Untitled"
	}
	return t
}

// messages
type errMsg struct{ err error }
type entriesMsg struct{ entries []*entry.Entry }
type tagsMsg struct{ tags []entry.Tag }
type toastMsg struct{ note notify.Note }
type toastExpireMsg struct{ gen uint64 }
type themeMsg struct {
	theme store.Theme
	err   error
}
type prefsEventMsg struct{ event store.Event }

// Model contains UI state
type Model struct {
	svc   *app.Service
	prefs store.Preferences
	loop  Loop
	ctx   context.Context
	log   *zap.Logger

	mode mode
	th   theme.Theme

	entries    []*entry.Entry
	placements []timeline.Placement
	rng        timeline.Range
	cursor     int
	preview    *timeline.Controller
	pointer    pointerTarget

	entList list.Model
	input   textinput.Model
	filter  *filterBox
	form    *entryForm
	detail  *entry.Entry
	confirm *entry.Entry

	question     string
	questionView string

	bottom bottombar.Model
	panel  panel.Model
	help   *help.Model
	report *report.Model
	toast  *toast

	buttons map[control]*app.Button
	knownTags []string

	termWidth  int
	termHeight int
}

type Option func(*Model)

// WithPreferences restores theme and filter from p and persists changes to it.
func WithPreferences(p store.Preferences) Option {
	return func(m *Model) { m.prefs = p }
}

// WithLoop routes timers, reloads and notifications through l.
func WithLoop(l Loop) Option {
	return func(m *Model) { m.loop = l }
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New creates a new UI model backed by the Service. When a loop is given the
// service's reloads and notifications are posted to it, so every state change
// happens on the event loop.
func New(svc *app.Service, opts ...Option) Model {
	m := Model{
		svc:     svc,
		ctx:     context.Background(),
		log:     zap.NewNop(),
		mode:    modeNormal,
		th:      theme.Default(),
		cursor:  -1,
		buttons: map[control]*app.Button{
			ctlSave:     {Text: "Save Entry"},
			ctlDelete:   {Text: "Delete"},
			ctlQuestion: {Text: "Generate New Question"},
		},
	}
	for _, o := range opts {
		o(&m)
	}

	var sched timeline.Scheduler
	if m.loop != nil {
		sched = m.loop
	}
	m.preview = timeline.NewController(sched)

	if m.prefs != nil {
		m.th = theme.For(m.prefs.Theme())
		if f := m.prefs.Filter(); svc != nil {
			svc.SetFilter(client.Filter{Tags: f.Tags, Start: f.Start, End: f.End})
		}
	}
	if svc != nil && m.loop != nil {
		loop := m.loop
		svc.OnReload(func(es []*entry.Entry) { loop.Post(entriesMsg{es}) })
		svc.OnTags(func(ts []entry.Tag) { loop.Post(tagsMsg{ts}) })
		svc.Notifier = notify.Func(func(message string, isError bool) {
			loop.Post(toastMsg{notify.Note{Message: message, IsError: isError}})
		})
	}

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	l := list.New([]list.Item{}, d, 60, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	m.entList = l

	ti := textinput.New()
	ti.Placeholder = "command"
	ti.CharLimit = 256
	ti.Prompt = ""
	m.input = ti

	m.filter = newFilterBox()
	m.bottom = bottombar.New(m.th.Footer)
	m.bottom.SetCommandDefinitions(paletteCommands)
	m.panel = panel.New(m.th.Panel)
	m.help = help.New(80, 24, m.th.Glamour, helpSections())
	m.report = report.New(m.th)
	m.report.SetViewport(m.width(), m.height()-8)
	m.applyTheme(m.th.Name)
	m.setMode(modeNormal)
	return m
}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reload(), m.loadTags())
}

func (m *Model) reload() tea.Cmd {
	svc, ctx, loop := m.svc, m.ctx, m.loop
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		es, err := svc.Reload(ctx)
		if err != nil {
			return errMsg{err}
		}
		if loop == nil {
			return entriesMsg{es}
		}
		return nil
	}
}

func (m *Model) loadTags() tea.Cmd {
	svc, ctx, loop := m.svc, m.ctx, m.loop
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ts, err := svc.Tags(ctx)
		if err != nil {
			return errMsg{err}
		}
		if loop == nil {
			return tagsMsg{ts}
		}
		return nil
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.log.Debug("ui error", zap.Error(msg.err))
		m.bottom.SetStatus("ERR: " + msg.err.Error())
	case entriesMsg:
		m.setEntries(msg.entries)
	case tagsMsg:
		m.knownTags = entry.TagNames(msg.tags)
		m.filter.input.SetWhitelist(m.knownTags)
		if m.form != nil {
			m.form.tags.SetWhitelist(m.knownTags)
		}
	case toastMsg:
		cmds = append(cmds, m.showToast(msg.note))
	case toastExpireMsg:
		if m.toast != nil && m.toast.gen == msg.gen {
			m.toast = nil
		}
	case timeline.HideMsg:
		m.preview.Expire(msg)
	case busyDoneMsg:
		if b := m.buttons[msg.ctl]; b != nil {
			b.SetLabel(msg.label)
			b.SetDisabled(false)
		}
		if msg.inner != nil {
			return m.Update(msg.inner)
		}
	case themeMsg:
		if msg.err != nil {
			m.bottom.SetStatus("ERR: " + msg.err.Error())
		} else {
			m.applyTheme(msg.theme)
		}
	case prefsEventMsg:
		if msg.event.Type == store.EventThemeChanged {
			cmds = append(cmds, m.readTheme())
		}
	case savedMsg, editSessionMsg, editedMsg, deletedMsg, draftMsg, questionMsg, reportMsg:
		cmds = append(cmds, m.handleResult(msg))
	case tea.MouseClickMsg:
		if m.mode == modeNormal {
			cmds = append(cmds, m.handleClick(msg.Mouse()))
		}
	case tea.MouseMotionMsg:
		if m.mode == modeNormal {
			m.handleMotion(msg.Mouse())
		}
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.Teardown()
			return m, tea.Quit
		}
		switch m.mode {
		case modeNormal:
			cmds = append(cmds, m.updateNormal(msg))
		case modeForm:
			cmds = append(cmds, m.updateForm(msg))
		case modeCommand:
			cmds = append(cmds, m.updateCommand(msg))
		case modeFilter:
			cmds = append(cmds, m.updateFilter(msg))
		case modeHelp:
			switch msg.String() {
			case "q", "esc", "?":
				m.setMode(modeNormal)
			default:
				cmds = append(cmds, m.help.Update(msg))
			}
		case modeDetail:
			cmds = append(cmds, m.updateDetail(msg))
		case modeConfirm:
			cmds = append(cmds, m.updateConfirm(msg))
		case modeQuestion:
			cmds = append(cmds, m.updateQuestion(msg))
		case modeReport:
			m.updateReport(msg)
		}
	default:
		if m.mode == modeHelp {
			cmds = append(cmds, m.help.Update(msg))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Teardown()
		return tea.Quit
	case "left", "h":
		m.stepMarker(-1)
	case "right", "l":
		m.stepMarker(1)
	case "esc":
		m.preview.Reset()
		m.cursor = -1
	case "j", "down":
		m.entList.CursorDown()
	case "k", "up":
		m.entList.CursorUp()
	case "g", "home":
		m.entList.Select(0)
	case "G", "end":
		if n := len(m.entList.Items()); n > 0 {
			m.entList.Select(n - 1)
		}
	case "enter":
		if e := m.focusedEntry(); e != nil {
			m.openDetail(e)
		}
	case "n":
		return m.newEntry()
	case "e":
		if e := m.focusedEntry(); e != nil {
			return m.editEntry(e.ID)
		}
	case "d":
		if e := m.focusedEntry(); e != nil {
			m.askDelete(e)
		}
	case "/":
		return m.openFilter()
	case ":":
		return m.enterCommandMode()
	case "a":
		return m.openQuestion()
	case "t":
		return m.toggleTheme()
	case "r":
		return tea.Batch(m.reload(), m.loadTags())
	case "?":
		m.setMode(modeHelp)
	}
	return nil
}

// focusedEntry is the previewed marker's entry, else the list selection.
func (m *Model) focusedEntry() *entry.Entry {
	if id := m.preview.Active(); id != "" {
		if e := m.entryByID(id); e != nil {
			return e
		}
	}
	if it, ok := m.entList.SelectedItem().(entryItem); ok {
		return it.e
	}
	return nil
}

func (m *Model) entryByID(id string) *entry.Entry {
	for _, e := range m.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (m *Model) setMode(md mode) {
	m.mode = md
	m.bottom.SetMode(barModes[md])
	m.bottom.SetHelp(helpLines[md])
}

func (m *Model) setEntries(es []*entry.Entry) {
	m.entries = es
	items := make([]list.Item, 0, len(es))
	for _, e := range es {
		items = append(items, entryItem{e: e})
	}
	m.entList.SetItems(items)
	if idx := m.entList.Index(); idx >= len(items) && len(items) > 0 {
		m.entList.Select(len(items) - 1)
	}
	m.layoutTimeline()
	if m.detail != nil {
		if e := m.entryByID(m.detail.ID); e != nil {
			m.detail = e
		}
	}
	m.bottom.SetStatus(fmt.Sprintf("%d entries", len(es)))
}

func (m *Model) applyTheme(t store.Theme) {
	m.th = theme.For(t)
	m.bottom.SetTheme(m.th.Footer, string(m.th.Name))
	m.panel.SetTheme(m.th.Panel)
	m.help.SetStyle(m.th.Glamour)
	m.report.SetTheme(m.th)

	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(m.th.List.Normal.GetForeground())
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(m.th.List.Dim.GetForeground())
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(m.th.List.Selected.GetForeground()).
		BorderForeground(m.th.List.Selected.GetForeground())
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(m.th.List.Dim.GetForeground()).
		BorderForeground(m.th.List.Selected.GetForeground())
	m.entList.SetDelegate(d)
	if m.questionView != "" {
		m.questionView = m.renderQuestion()
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	next := m.th.Name.Toggle()
	m.applyTheme(next)
	prefs := m.prefs
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		if err := prefs.SetTheme(next); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *Model) readTheme() tea.Cmd {
	prefs := m.prefs
	if prefs == nil {
		return nil
	}
	return func() tea.Msg {
		return themeMsg{theme: prefs.Theme()}
	}
}

// applySizes recalculates pane sizes based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	w, h := m.listSize()
	m.entList.SetSize(w, h)
	m.help.SetSize(min(m.termWidth-4, 90), m.termHeight-4)
	m.report.SetViewport(min(m.termWidth, 100), m.termHeight-8)
	m.layoutTimeline()
	if m.form != nil {
		m.form.setWidth(m.modalWidth())
	}
}

func (m *Model) width() int {
	if m.termWidth <= 0 {
		return 80
	}
	return m.termWidth
}

func (m *Model) height() int {
	if m.termHeight <= 0 {
		return 24
	}
	return m.termHeight
}

func (m *Model) modalWidth() int {
	return max(min(m.width()-8, 76), 30)
}

// Teardown cancels every timer and releases a held editor. Run calls it when
// the program exits.
func (m *Model) Teardown() {
	m.preview.Close()
	if m.toast != nil && m.toast.timer != nil {
		m.toast.timer.Stop()
	}
	if m.form != nil && m.form.session != nil {
		m.form.session.Cancel()
	}
	if m.loop != nil {
		m.loop.StopAll()
	}
}
