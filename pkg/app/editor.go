package app

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
)

// Editor is a rich-text editing surface.
type Editor interface {
	Data() string
	SetData(string)
	Destroy()
}

// EditorFactory creates an editor seeded with content.
type EditorFactory func(content string) (Editor, error)

var ErrReleased = errors.New("app: editor already released")

// EditorHandle owns one editor for the length of an edit session. Release
// destroys the editor exactly once, no matter how often it is called.
type EditorHandle struct {
	once sync.Once
	mu   sync.Mutex
	ed   Editor
}

// AcquireEditor creates an editor for one session. Callers defer Release.
func AcquireEditor(factory EditorFactory, content string) (*EditorHandle, error) {
	if factory == nil {
		return nil, errors.New("app: no editor factory")
	}
	ed, err := factory(content)
	if err != nil {
		return nil, err
	}
	return &EditorHandle{ed: ed}, nil
}

// Editor returns the live editor, or ErrReleased after Release.
func (h *EditorHandle) Editor() (Editor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ed == nil {
		return nil, ErrReleased
	}
	return h.ed, nil
}

// Data reads the editor content.
func (h *EditorHandle) Data() (string, error) {
	ed, err := h.Editor()
	if err != nil {
		return "", err
	}
	return ed.Data(), nil
}

func (h *EditorHandle) Release() {
	h.once.Do(func() {
		h.mu.Lock()
		ed := h.ed
		h.ed = nil
		h.mu.Unlock()
		if ed != nil {
			ed.Destroy()
		}
	})
}

func (h *EditorHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ed == nil
}

// EditSession edits one existing entry.
type EditSession struct {
	ID        string
	Title     string
	EntryDate string
	handle    *EditorHandle
}

// Edit loads entry id and opens an editor on its content. The caller must
// end the session with Save or Cancel.
func (s *Service) Edit(ctx context.Context, id string, factory EditorFactory) (*EditSession, error) {
	e, err := s.Entry(ctx, id)
	if err != nil {
		return nil, err
	}
	h, err := AcquireEditor(factory, e.Content)
	if err != nil {
		s.notify(MsgEditFailed, true)
		return nil, err
	}
	return &EditSession{
		ID:        e.ID,
		Title:     e.Title,
		EntryDate: e.EntryDate.Input(),
		handle:    h,
	}, nil
}

// Editor exposes the session's editor, e.g. to forward key input to it.
func (es *EditSession) Editor() (Editor, error) {
	return es.handle.Editor()
}

// Changes reads the editor into an update. It touches the editor, so call it
// from the goroutine that drives the editor.
func (es *EditSession) Changes() (client.EntryUpdate, error) {
	content, err := es.handle.Data()
	if err != nil {
		return client.EntryUpdate{}, err
	}
	return client.EntryUpdate{
		Title:     es.Title,
		Content:   content,
		EntryDate: es.EntryDate,
	}, nil
}

// Commit sends u for the session's entry. It never touches the editor and is
// safe to run off the UI loop.
func (es *EditSession) Commit(ctx context.Context, s *Service, u client.EntryUpdate) (*entry.Entry, error) {
	return s.Update(ctx, es.ID, u)
}

// Save writes the edited entry back and closes the session on success. A
// failed save leaves the editor open so the caller can retry or Cancel.
func (es *EditSession) Save(ctx context.Context, s *Service) (*entry.Entry, error) {
	u, err := es.Changes()
	if err != nil {
		return nil, err
	}
	e, err := es.Commit(ctx, s, u)
	if err != nil {
		return nil, err
	}
	es.Close()
	return e, nil
}

// Close releases the editor after a successful save.
func (es *EditSession) Close() {
	es.handle.Release()
}

// Cancel discards the session.
func (es *EditSession) Cancel() {
	es.handle.Release()
}

func (es *EditSession) Closed() bool {
	return es.handle.Released()
}
