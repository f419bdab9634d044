package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/media"
	"tableflip.dev/journal/pkg/notify"
)

type memoryStore struct {
	mu      sync.Mutex
	counter int
	entries map[string]*entry.Entry

	listCalls   int
	createCalls int
	tagCalls    int
	lastFilter  client.Filter

	failDelete error
	failCreate error
	failList   error
}

func newMemoryStore(entries ...*entry.Entry) *memoryStore {
	ms := &memoryStore{entries: make(map[string]*entry.Entry)}
	for _, e := range entries {
		if e.ID == "" {
			e.ID = ms.newID()
		}
		cp := *e
		ms.entries[e.ID] = &cp
	}
	return ms
}

func (m *memoryStore) newID() string {
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

func (m *memoryStore) Tags(_ context.Context) ([]entry.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tagCalls++
	counts := map[string]int{}
	for _, e := range m.entries {
		for _, t := range e.Tags {
			counts[t]++
		}
	}
	out := make([]entry.Tag, 0, len(counts))
	for t, c := range counts {
		out = append(out, entry.Tag{Tag: t, Count: c})
	}
	return out, nil
}

func (m *memoryStore) Entries(_ context.Context, f client.Filter) ([]*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	m.lastFilter = f
	if m.failList != nil {
		return nil, m.failList
	}
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memoryStore) Entry(_ context.Context, id string) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, &client.ServerError{Op: "get entry", StatusCode: 404, Message: "Entry not found"}
	}
	cp := *e
	return &cp, nil
}

func (m *memoryStore) Create(_ context.Context, n client.NewEntry, files []media.File) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.failCreate != nil {
		return nil, m.failCreate
	}
	e := &entry.Entry{ID: m.newID(), Title: n.Title, Content: n.Content, Tags: n.Tags}
	e.EntryDate.Time, _ = entry.ParseTime(n.EntryDate)
	for _, f := range files {
		kind, _ := f.Kind()
		e.Media = append(e.Media, entry.MediaItem{Type: kind, Filename: f.Name, Size: f.Size})
	}
	m.entries[e.ID] = e
	cp := *e
	return &cp, nil
}

func (m *memoryStore) Update(_ context.Context, id string, u client.EntryUpdate) (*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, &client.ServerError{Op: "update entry", StatusCode: 404}
	}
	e.Title = u.Title
	e.Content = u.Content
	cp := *e
	return &cp, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	delete(m.entries, id)
	return nil
}

func (m *memoryStore) GenerateQuestion(_ context.Context, suggestion string) (string, error) {
	if suggestion != "" {
		return "What did " + suggestion + " teach you?", nil
	}
	return "What made you smile today?", nil
}

func newService(ms *memoryStore) (*Service, *notify.Recorder) {
	rec := &notify.Recorder{}
	return &Service{Store: ms, Notifier: rec}, rec
}

func TestDeleteReloadsOnceOnSuccess(t *testing.T) {
	ms := newMemoryStore(&entry.Entry{ID: "a", Content: "<p>x</p>"})
	svc, rec := newService(ms)
	reloads := 0
	svc.OnReload(func([]*entry.Entry) { reloads++ })

	if err := svc.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if reloads != 1 || ms.listCalls != 1 {
		t.Fatalf("expected exactly one reload, got %d (list calls %d)", reloads, ms.listCalls)
	}
	if last, _ := rec.Last(); last.Message != MsgDeleted || last.IsError {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestDeleteFailureDoesNotReload(t *testing.T) {
	ms := newMemoryStore(&entry.Entry{ID: "a"})
	ms.failDelete = &client.ServerError{Op: "delete entry", StatusCode: 500}
	svc, rec := newService(ms)
	reloads := 0
	svc.OnReload(func([]*entry.Entry) { reloads++ })

	if err := svc.Delete(context.Background(), "a"); !client.IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if reloads != 0 || ms.listCalls != 0 {
		t.Fatalf("expected no reload, got %d", reloads)
	}
	if rec.Errors() != 1 {
		t.Fatalf("expected one error notification, got %d", rec.Errors())
	}
}

func TestSubmitRejectsEmptyContent(t *testing.T) {
	ms := newMemoryStore()
	svc, rec := newService(ms)
	_, err := svc.Submit(context.Background(), Draft{Title: "t", Content: "<p>&nbsp;</p>"})
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if ms.createCalls != 0 {
		t.Fatalf("expected no request")
	}
	if last, _ := rec.Last(); last.Message != MsgEmpty {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestSubmitRejectsBadMediaWithoutRequest(t *testing.T) {
	ms := newMemoryStore()
	svc, rec := newService(ms)
	_, err := svc.Submit(context.Background(), Draft{
		Content: "<p>hello</p>",
		Files: []media.File{
			{Name: "ok.png", MIME: "image/png", Size: 10},
			{Name: "bundle.zip", MIME: "application/zip", Size: 10},
		},
	})
	var verr *media.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ms.createCalls != 0 {
		t.Fatalf("expected no request to be sent")
	}
	if last, _ := rec.Last(); !strings.Contains(last.Message, "bundle.zip") {
		t.Fatalf("expected the rejected file to be named, got %+v", last)
	}
}

func TestSubmitRefreshesTagsAndList(t *testing.T) {
	ms := newMemoryStore()
	svc, rec := newService(ms)
	var whitelist []entry.Tag
	svc.OnTags(func(tags []entry.Tag) { whitelist = tags })
	var listed []*entry.Entry
	svc.OnReload(func(es []*entry.Entry) { listed = es })

	created, err := svc.Submit(context.Background(), Draft{
		Title:     " Morning ",
		Content:   "<p>coffee</p>",
		EntryDate: "2024-03-01T08:30",
		Tags:      []string{"daily"},
		Files:     []media.File{{Name: "a.jpg", MIME: "image/jpeg", Size: 2048}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.Title != "Morning" || len(created.Media) != 1 {
		t.Fatalf("unexpected created entry %+v", created)
	}
	if len(whitelist) != 1 || whitelist[0].Tag != "daily" {
		t.Fatalf("expected whitelist refresh, got %v", whitelist)
	}
	if len(listed) != 1 {
		t.Fatalf("expected list reload, got %d", len(listed))
	}
	if last, _ := rec.Last(); last.Message != MsgSaved {
		t.Fatalf("unexpected notification %+v", last)
	}
}

func TestSubmitDefaultsEntryDate(t *testing.T) {
	ms := newMemoryStore()
	svc, _ := newService(ms)
	created, err := svc.Submit(context.Background(), Draft{Content: "hi"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.EntryDate.IsZero() || time.Since(created.EntryDate.Time) > time.Hour {
		t.Fatalf("expected entry date defaulted to now, got %v", created.EntryDate)
	}
}

func TestSubmitSurfacesServerMessage(t *testing.T) {
	ms := newMemoryStore()
	ms.failCreate = &client.ServerError{Op: "create entry", StatusCode: 400, Message: "Invalid date"}
	svc, rec := newService(ms)
	reloads := 0
	svc.OnReload(func([]*entry.Entry) { reloads++ })
	if _, err := svc.Submit(context.Background(), Draft{Content: "hi"}); err == nil {
		t.Fatalf("expected error")
	}
	if last, _ := rec.Last(); last.Message != "Invalid date" || !last.IsError {
		t.Fatalf("expected server message, got %+v", last)
	}
	if reloads != 0 {
		t.Fatalf("expected no reload after failed create")
	}
}

func TestReloadUsesFilter(t *testing.T) {
	ms := newMemoryStore()
	svc, _ := newService(ms)
	svc.SetFilter(client.Filter{Tags: []string{"a", "b"}, Start: "2024-01-01"})
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if strings.Join(ms.lastFilter.Tags, ",") != "a,b" || ms.lastFilter.Start != "2024-01-01" {
		t.Fatalf("unexpected filter %+v", ms.lastFilter)
	}
}

func TestQuestion(t *testing.T) {
	svc, _ := newService(newMemoryStore())
	q, err := svc.Question(context.Background(), " gratitude ")
	if err != nil || q != "What did gratitude teach you?" {
		t.Fatalf("unexpected question %q (%v)", q, err)
	}
}

func TestNoStore(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Reload(context.Background()); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestReportGroupsByMonth(t *testing.T) {
	day := func(m time.Month, d int) entry.Timestamp {
		return entry.Timestamp{Time: time.Date(2024, m, d, 9, 0, 0, 0, time.UTC)}
	}
	ms := newMemoryStore(
		&entry.Entry{ID: "1", EntryDate: day(time.February, 10), Tags: []string{"work"}},
		&entry.Entry{ID: "2", EntryDate: day(time.January, 5), Tags: []string{"Work", "home"}},
		&entry.Entry{ID: "3", EntryDate: day(time.January, 2)},
		&entry.Entry{ID: "4", EntryDate: day(time.June, 1)},
	)
	svc, _ := newService(ms)
	since := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	res, err := svc.Report(context.Background(), until, since)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if res.Total != 3 || len(res.Sections) != 2 {
		t.Fatalf("expected 3 entries in 2 months, got %d in %d", res.Total, len(res.Sections))
	}
	if res.Sections[0].Label() != "Jan 24" || res.Sections[0].Entries[0].ID != "3" {
		t.Fatalf("unexpected first section %+v", res.Sections[0])
	}
	if len(res.Tags) != 2 || res.Tags[0].Count != 2 {
		t.Fatalf("expected case-insensitive tag counts, got %+v", res.Tags)
	}
}

func TestReloadFailureAfterMutationIsLastNotification(t *testing.T) {
	ms := newMemoryStore(&entry.Entry{ID: "a", Content: "<p>x</p>"}, &entry.Entry{ID: "b", Content: "<p>y</p>"})
	ms.failList = errors.New("backend down")
	svc, rec := newService(ms)
	ctx := context.Background()

	if _, err := svc.Submit(ctx, Draft{Content: "new"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Update(ctx, "a", client.EntryUpdate{Content: "<p>z</p>"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []notify.Note{
		{Message: MsgSaved}, {Message: MsgLoadFailed, IsError: true},
		{Message: MsgUpdated}, {Message: MsgLoadFailed, IsError: true},
		{Message: MsgDeleted}, {Message: MsgLoadFailed, IsError: true},
	}
	got := rec.Notes()
	if len(got) != len(want) {
		t.Fatalf("expected %d notifications, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("notification %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
