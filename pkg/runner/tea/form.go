package teaui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/media"
	"tableflip.dev/journal/pkg/store"
	"tableflip.dev/journal/pkg/tags"
)

type field int

const (
	fieldTitle field = iota
	fieldDate
	fieldContent
	fieldTags
	fieldMedia
	fieldCount
)

var fieldNames = [fieldCount]string{"Title", "Date", "Content", "Tags", "Media"}

// areaEditor is the app.Editor behind the content field.
type areaEditor struct {
	area      textarea.Model
	destroyed bool
}

func newAreaEditor(content string) *areaEditor {
	ta := textarea.New()
	ta.Placeholder = "What happened today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.SetValue(content)
	return &areaEditor{area: ta}
}

func (a *areaEditor) Data() string     { return a.area.Value() }
func (a *areaEditor) SetData(s string) { a.area.SetValue(s) }

func (a *areaEditor) Destroy() {
	a.area.Reset()
	a.area.Blur()
	a.destroyed = true
}

// areaFactory adapts newAreaEditor to app.EditorFactory. The created editor
// is reported through created so the form can drive it.
func areaFactory(created **areaEditor) app.EditorFactory {
	return func(content string) (app.Editor, error) {
		ed := newAreaEditor(content)
		*created = ed
		return ed, nil
	}
}

// entryForm is the new/edit entry modal.
type entryForm struct {
	inputs  [fieldCount]textinput.Model
	editor  *areaEditor
	focus   field
	session *app.EditSession
	tags    *tags.Input
	files   []media.File
	notes   []string
	width   int
}

func newEntryForm(known []string) *entryForm {
	f := &entryForm{tags: tags.New(known)}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 512
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "Untitled"
	f.inputs[fieldDate].Placeholder = entry.LayoutInput
	f.inputs[fieldDate].SetValue(entry.Now())
	f.inputs[fieldTags].Placeholder = "comma separated"
	f.inputs[fieldMedia].Placeholder = "paths, comma separated"
	f.editor = newAreaEditor("")
	return f
}

func (f *entryForm) editing() bool { return f.session != nil }

func (f *entryForm) setWidth(w int) {
	f.width = w
	f.editor.area.SetWidth(max(w-6, 20))
}

func (f *entryForm) seed(d store.Draft) {
	f.inputs[fieldTitle].SetValue(d.Title)
	if d.EntryDate != "" {
		f.inputs[fieldDate].SetValue(d.EntryDate)
	}
	f.editor.SetData(d.Content)
	f.inputs[fieldTags].SetValue(strings.Join(d.Tags, ", "))
}

func (f *entryForm) draft() store.Draft {
	return store.Draft{
		Title:     f.inputs[fieldTitle].Value(),
		Content:   f.editor.Data(),
		EntryDate: f.inputs[fieldDate].Value(),
		Tags:      tags.Split(f.inputs[fieldTags].Value()),
	}
}

func (f *entryForm) fields() []field {
	if f.editing() {
		return []field{fieldTitle, fieldDate, fieldContent}
	}
	return []field{fieldTitle, fieldDate, fieldContent, fieldTags, fieldMedia}
}

// setFocus moves focus to fd and returns the blink command of the new field.
func (f *entryForm) setFocus(fd field) tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.editor.area.Blur()
	f.focus = fd
	if fd == fieldContent {
		f.editor.area.Focus()
		return nil
	}
	return f.inputs[fd].Focus()
}

func (f *entryForm) cycle(delta int) tea.Cmd {
	if f.focus == fieldMedia {
		f.stage()
	}
	order := f.fields()
	at := 0
	for i, fd := range order {
		if fd == f.focus {
			at = i
		}
	}
	at = (at + delta + len(order)) % len(order)
	return f.setFocus(order[at])
}

// stage stats the media paths so their previews can be shown before saving.
func (f *entryForm) stage() {
	f.files, f.notes = nil, nil
	for _, p := range tags.Split(f.inputs[fieldMedia].Value()) {
		file, err := media.Stat(p)
		if err != nil {
			f.notes = append(f.notes, err.Error())
			continue
		}
		f.files = append(f.files, file)
		f.notes = append(f.notes, file.Preview())
	}
}

// clearMedia drops every staged file after a rejected upload.
func (f *entryForm) clearMedia() {
	f.files, f.notes = nil, nil
	f.inputs[fieldMedia].SetValue("")
}

func (f *entryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == fieldContent {
		f.editor.area, cmd = f.editor.area.Update(msg)
		return cmd
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *entryForm) lines() []string {
	var out []string
	for _, fd := range f.fields() {
		label := fieldNames[fd]
		if fd == f.focus {
			label = "› " + label
		} else {
			label = "  " + label
		}
		if fd == fieldContent {
			out = append(out, label+":")
			out = append(out, strings.Split(f.editor.area.View(), "\n")...)
			continue
		}
		out = append(out, label+": "+f.inputs[fd].View())
		if fd == fieldTags && f.focus == fieldTags {
			if s := f.suggestions(); len(s) > 0 {
				out = append(out, "    "+strings.Join(s, "  "))
			}
		}
	}
	for _, n := range f.notes {
		out = append(out, "    ▸ "+n)
	}
	return out
}

func (f *entryForm) suggestions() []string {
	parts := strings.Split(f.inputs[fieldTags].Value(), ",")
	f.tags.Clear()
	for _, p := range parts[:len(parts)-1] {
		_ = f.tags.Add(p)
	}
	s := f.tags.Suggest(parts[len(parts)-1])
	if len(s) > 5 {
		s = s[:5]
	}
	return s
}

// Form results
type draftMsg struct {
	draft store.Draft
	ok    bool
}
type savedMsg struct {
	entry *entry.Entry
	err   error
}
type editSessionMsg struct {
	session *app.EditSession
	editor  *areaEditor
	err     error
}
type editedMsg struct {
	session *app.EditSession
	entry   *entry.Entry
	err     error
}

func (m *Model) newEntry() tea.Cmd {
	prefs := m.prefs
	m.form = newEntryForm(m.knownTags)
	m.form.setWidth(m.modalWidth())
	m.setMode(modeForm)
	focus := m.form.setFocus(fieldTitle)
	if prefs == nil {
		return focus
	}
	return tea.Batch(focus, func() tea.Msg {
		d, ok := prefs.Draft()
		return draftMsg{draft: d, ok: ok}
	})
}

func (m *Model) editEntry(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		var ed *areaEditor
		s, err := svc.Edit(ctx, id, areaFactory(&ed))
		return editSessionMsg{session: s, editor: ed, err: err}
	}
}

func (m *Model) updateForm(msg tea.KeyPressMsg) tea.Cmd {
	f := m.form
	if f == nil {
		m.setMode(modeNormal)
		return nil
	}
	if m.buttons[ctlSave].Disabled {
		// The form is frozen until the save returns.
		return nil
	}
	switch msg.String() {
	case "esc":
		return m.cancelForm()
	case "tab":
		return f.cycle(1)
	case "shift+tab":
		return f.cycle(-1)
	case "ctrl+s":
		return m.saveForm()
	}
	return f.update(msg)
}

func (m *Model) cancelForm() tea.Cmd {
	f := m.form
	m.form = nil
	m.setMode(modeNormal)
	if f.editing() {
		f.session.Cancel()
		return nil
	}
	prefs := m.prefs
	if prefs == nil {
		return nil
	}
	d := f.draft()
	return func() tea.Msg {
		var err error
		if d.IsZero() {
			err = prefs.ClearDraft()
		} else {
			err = prefs.SaveDraft(d)
		}
		if err != nil {
			return errMsg{err}
		}
		return toastMsg{noteInfo("Draft saved")}
	}
}

func (m *Model) saveForm() tea.Cmd {
	f := m.form
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	if f.editing() {
		s := f.session
		s.Title = strings.TrimSpace(f.inputs[fieldTitle].Value())
		s.EntryDate = strings.TrimSpace(f.inputs[fieldDate].Value())
		u, err := s.Changes()
		if err != nil {
			m.log.Debug("reading editor failed", zap.Error(err))
			return nil
		}
		return m.busy(ctlSave, "Saving...", func() tea.Msg {
			e, err := s.Commit(ctx, svc, u)
			return editedMsg{session: s, entry: e, err: err}
		})
	}

	f.stage()
	d := app.Draft{
		Title:     f.inputs[fieldTitle].Value(),
		Content:   f.editor.Data(),
		EntryDate: strings.TrimSpace(f.inputs[fieldDate].Value()),
		Tags:      tags.Split(f.inputs[fieldTags].Value()),
		Files:     f.files,
	}
	prefs := m.prefs
	return m.busy(ctlSave, "Saving...", func() tea.Msg {
		e, err := svc.Submit(ctx, d)
		if err == nil && prefs != nil {
			_ = prefs.ClearDraft()
		}
		return savedMsg{entry: e, err: err}
	})
}

// handleResult applies the outcome of a background call.
func (m *Model) handleResult(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case draftMsg:
		if msg.ok && m.form != nil && !m.form.editing() {
			m.form.seed(msg.draft)
			m.bottom.SetStatus("Draft restored")
		}
	case editSessionMsg:
		if msg.err != nil {
			m.log.Warn("opening editor failed", zap.Error(msg.err))
			return nil
		}
		f := newEntryForm(m.knownTags)
		f.session = msg.session
		f.editor = msg.editor
		f.inputs[fieldTitle].SetValue(msg.session.Title)
		f.inputs[fieldDate].SetValue(msg.session.EntryDate)
		f.setWidth(m.modalWidth())
		m.form = f
		m.setMode(modeForm)
		return f.setFocus(fieldContent)
	case savedMsg:
		if msg.err != nil {
			var verr *media.ValidationError
			if errors.As(msg.err, &verr) && m.form != nil {
				m.form.clearMedia()
			}
			return nil
		}
		m.form = nil
		m.setMode(modeNormal)
	case editedMsg:
		if msg.err != nil {
			// Keep the form and its editor so the edit can be retried.
			return nil
		}
		msg.session.Close()
		if m.form != nil && m.form.session == msg.session {
			m.form = nil
		}
		if msg.entry != nil && m.detail != nil {
			m.detail = msg.entry
			m.setMode(modeDetail)
			return nil
		}
		m.setMode(modeNormal)
	case deletedMsg:
		m.confirm = nil
		if msg.err == nil {
			m.detail = nil
			m.preview.Reset()
			m.cursor = -1
		}
		m.setMode(modeNormal)
	case questionMsg:
		if msg.err != nil {
			return nil
		}
		m.question = msg.question
		m.questionView = m.renderQuestion()
	case reportMsg:
		if msg.err != nil {
			m.bottom.SetStatus("ERR: " + msg.err.Error())
			return nil
		}
		m.report.SetData(msg.label, msg.result)
		m.setMode(modeReport)
	}
	return nil
}
