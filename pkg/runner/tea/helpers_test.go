package teaui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/media"
	"tableflip.dev/journal/pkg/store"
	"tableflip.dev/journal/pkg/timeline"
)

type fakeTimer struct{ stopped bool }

func (f *fakeTimer) Stop() bool {
	was := !f.stopped
	f.stopped = true
	return was
}

type scheduledMsg struct {
	d     time.Duration
	msg   any
	timer *fakeTimer
}

// fakeLoop records what the model schedules and posts instead of running a
// program.
type fakeLoop struct {
	mu        sync.Mutex
	posted    []any
	scheduled []scheduledMsg
	stopped   bool
}

func (l *fakeLoop) Schedule(d time.Duration, msg any) timeline.Timer {
	l.mu.Lock()
	defer l.mu.Unlock()
	t := &fakeTimer{}
	l.scheduled = append(l.scheduled, scheduledMsg{d: d, msg: msg, timer: t})
	return t
}

func (l *fakeLoop) Post(msg any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.posted = append(l.posted, msg)
}

func (l *fakeLoop) StopAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	for _, s := range l.scheduled {
		s.timer.Stop()
	}
}

// drain hands back everything posted since the last call.
func (l *fakeLoop) drain() []any {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.posted
	l.posted = nil
	return out
}

func (l *fakeLoop) lastScheduled() scheduledMsg {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scheduled[len(l.scheduled)-1]
}

// memStore is an in-memory app.Store.
type memStore struct {
	mu         sync.Mutex
	entries    []*entry.Entry
	tags       []entry.Tag
	listCalls  int
	deleteErr  error
	question   string
	lastCreate *client.NewEntry
}

func (s *memStore) Tags(context.Context) ([]entry.Tag, error) {
	return s.tags, nil
}

func (s *memStore) Entries(_ context.Context, f client.Filter) ([]*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	var out []*entry.Entry
	for _, e := range s.entries {
		keep := len(f.Tags) == 0
		for _, t := range f.Tags {
			keep = keep || e.HasTag(t)
		}
		if keep {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) Entry(_ context.Context, id string) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *memStore) Create(_ context.Context, n client.NewEntry, _ []media.File) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCreate = &n
	e := &entry.Entry{ID: "new", Title: n.Title, Content: n.Content, Tags: n.Tags}
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *memStore) Update(_ context.Context, id string, u client.EntryUpdate) (*entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			e.Title, e.Content = u.Title, u.Content
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (s *memStore) GenerateQuestion(context.Context, string) (string, error) {
	return s.question, nil
}

func (s *memStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// memPrefs is an in-memory store.Preferences.
type memPrefs struct {
	theme  store.Theme
	filter store.Filter
	draft  *store.Draft
}

func (p *memPrefs) Theme() store.Theme {
	if p.theme == "" {
		return store.Dark
	}
	return p.theme
}
func (p *memPrefs) SetTheme(t store.Theme) error   { p.theme = t; return nil }
func (p *memPrefs) Filter() store.Filter           { return p.filter }
func (p *memPrefs) SetFilter(f store.Filter) error { p.filter = f; return nil }
func (p *memPrefs) Draft() (store.Draft, bool) {
	if p.draft == nil {
		return store.Draft{}, false
	}
	return *p.draft, true
}
func (p *memPrefs) SaveDraft(d store.Draft) error { p.draft = &d; return nil }
func (p *memPrefs) ClearDraft() error             { p.draft = nil; return nil }
func (p *memPrefs) BasePath() string              { return "" }

func day(y int, m time.Month, d int) entry.Timestamp {
	return entry.Timestamp{Time: time.Date(y, m, d, 12, 0, 0, 0, time.UTC)}
}

func sampleEntries() []*entry.Entry {
	return []*entry.Entry{
		{ID: "a", Title: "First light", Content: "<p>Woke up early.</p>", EntryDate: day(2024, time.January, 2), Tags: []string{"morning"}},
		{ID: "b", Title: "Harbour walk", Content: "<p>Cold but bright.</p>", EntryDate: day(2024, time.February, 14), Tags: []string{"travel"}},
		{ID: "c", Title: "Spring notes", Content: "<p>Seedlings are up.</p>", EntryDate: day(2024, time.April, 20)},
	}
}

type fixture struct {
	m     Model
	loop  *fakeLoop
	store *memStore
	prefs *memPrefs
	svc   *app.Service
}

// newFixture builds a sized model with the sample entries already loaded.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		loop:  &fakeLoop{},
		store: &memStore{entries: sampleEntries(), question: "What surprised you this week?"},
		prefs: &memPrefs{},
	}
	f.svc = &app.Service{Store: f.store}
	f.m = New(f.svc, WithLoop(f.loop), WithPreferences(f.prefs))
	f.update(tea.WindowSizeMsg{Width: 100, Height: 32})
	if _, err := f.svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	f.deliver()
	return f
}

func (f *fixture) update(msg tea.Msg) tea.Cmd {
	next, cmd := f.m.Update(msg)
	f.m = next.(Model)
	return cmd
}

// run executes a single-message command, such as a busy call, and feeds its
// result back.
func (f *fixture) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		f.update(msg)
	}
}

// runAll is run for commands that may batch. Only use it where no cursor
// blink commands are involved.
func (f *fixture) runAll(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			f.runAll(c)
		}
	default:
		f.update(msg)
	}
}

// deliver feeds everything the service posted to the loop.
func (f *fixture) deliver() {
	for _, msg := range f.loop.drain() {
		f.update(msg)
	}
}

func (f *fixture) markerX(t *testing.T, id string) int {
	t.Helper()
	i := f.m.placementIndex(id)
	if i < 0 {
		t.Fatalf("no marker for %q", id)
	}
	return padX + f.m.markerColumn(f.m.placements[i])
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Text: s, Code: r}
}

// previewRows is the screen area above the markers where previews open.
func previewRows(view string) string {
	lines := strings.Split(view, "\n")
	return strings.Join(lines[boundsRow+1:markersRow], "\n")
}

func stripANSI(s string) string {
	return ansi.Strip(s)
}

func contains(t *testing.T, view, want string) {
	t.Helper()
	if !strings.Contains(view, want) {
		t.Fatalf("expected view to contain %q; view=%q", want, view)
	}
}
