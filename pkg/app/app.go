package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/media"
	"tableflip.dev/journal/pkg/notify"
)

// Store is the remote entry store. *client.Client satisfies it.
type Store interface {
	Tags(ctx context.Context) ([]entry.Tag, error)
	Entries(ctx context.Context, f client.Filter) ([]*entry.Entry, error)
	Entry(ctx context.Context, id string) (*entry.Entry, error)
	Create(ctx context.Context, n client.NewEntry, files []media.File) (*entry.Entry, error)
	Update(ctx context.Context, id string, u client.EntryUpdate) (*entry.Entry, error)
	Delete(ctx context.Context, id string) error
	GenerateQuestion(ctx context.Context, suggestion string) (string, error)
}

var (
	ErrNoStore      = errors.New("app: no store configured")
	ErrEmptyContent = errors.New("app: entry content is empty")
)

// Notification texts shown to the user.
const (
	MsgSaved        = "Entry saved successfully!"
	MsgSaveFailed   = "Error saving entry"
	MsgEmpty        = "Please enter some content for your journal entry"
	MsgUpdated      = "Entry updated successfully"
	MsgUpdateFailed = "Error updating entry"
	MsgDeleted      = "Entry deleted successfully"
	MsgDeleteFailed = "Error deleting entry"
	MsgLoadFailed   = "Error loading entries"
	MsgTagsFailed   = "Error loading tags"
	MsgEditFailed   = "Error loading entry for editing"
	MsgQuestionFail = "Error generating question"
)

// Service provides the journal operations shared by the CLI and the
// interactive program. Mutations reload the list only after the server
// confirmed them; failures are logged and surfaced through the notifier.
type Service struct {
	Store    Store
	Notifier notify.Notifier
	Log      *zap.Logger

	mu        sync.Mutex
	filter    client.Filter
	listeners []func([]*entry.Entry)
	tagFns    []func([]entry.Tag)
}

// Draft is a new entry as typed into a form.
type Draft struct {
	Title     string
	Content   string
	EntryDate string
	Tags      []string
	Files     []media.File
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Service) notify(message string, isError bool) {
	if s.Notifier != nil {
		s.Notifier.Notify(message, isError)
	}
}

// OnReload registers fn to receive every freshly loaded entry list.
func (s *Service) OnReload(fn func([]*entry.Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// OnTags registers fn to receive the refreshed tag list.
func (s *Service) OnTags(fn func([]entry.Tag)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagFns = append(s.tagFns, fn)
}

// SetFilter changes the filter used by Reload.
func (s *Service) SetFilter(f client.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

func (s *Service) Filter() client.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tags fetches the known tags and hands them to OnTags listeners.
func (s *Service) Tags(ctx context.Context) ([]entry.Tag, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	tags, err := s.Store.Tags(ctx)
	if err != nil {
		s.logger().Warn("loading tags failed", zap.Error(err))
		s.notify(MsgTagsFailed, true)
		return nil, err
	}
	s.mu.Lock()
	fns := append([]func([]entry.Tag){}, s.tagFns...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(tags)
	}
	return tags, nil
}

// Reload fetches entries for the current filter and hands them to OnReload
// listeners.
func (s *Service) Reload(ctx context.Context) ([]*entry.Entry, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	f := s.Filter()
	entries, err := s.Store.Entries(ctx, f)
	if err != nil {
		s.logger().Warn("loading entries failed", zap.Error(err))
		s.notify(MsgLoadFailed, true)
		return nil, err
	}
	s.mu.Lock()
	fns := append([]func([]*entry.Entry){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(entries)
	}
	return entries, nil
}

// Entry fetches a single entry, e.g. to seed an edit session.
func (s *Service) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	e, err := s.Store.Entry(ctx, id)
	if err != nil {
		s.logger().Warn("loading entry failed", zap.String("id", id), zap.Error(err))
		s.notify(MsgEditFailed, true)
		return nil, err
	}
	return e, nil
}

// Submit creates an entry. Content and attachments are checked before any
// request goes out. On success the tag whitelist and the list are refreshed.
func (s *Service) Submit(ctx context.Context, d Draft) (*entry.Entry, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	if entry.IsBlank(d.Content) {
		s.notify(MsgEmpty, true)
		return nil, ErrEmptyContent
	}
	files, err := media.Validate(d.Files)
	if err != nil {
		var verr *media.ValidationError
		if errors.As(err, &verr) {
			for _, p := range verr.Problems {
				s.notify(p, true)
			}
		} else {
			s.notify(err.Error(), true)
		}
		return nil, err
	}
	date := strings.TrimSpace(d.EntryDate)
	if date == "" {
		date = entry.Now()
	}

	created, err := s.Store.Create(ctx, client.NewEntry{
		Title:     strings.TrimSpace(d.Title),
		Content:   d.Content,
		EntryDate: date,
		Tags:      d.Tags,
	}, files)
	if err != nil {
		s.logger().Error("saving entry failed", zap.Error(err))
		msg := MsgSaveFailed
		if server := client.ServerMessage(err); server != "" {
			msg = server
		}
		s.notify(msg, true)
		return nil, err
	}
	s.logger().Info("entry saved", zap.String("id", created.ID), zap.Int("media", len(files)))

	// Success is reported before the reload so a reload failure stays visible.
	s.notify(MsgSaved, false)
	_, _ = s.Tags(ctx)
	_, _ = s.Reload(ctx)
	return created, nil
}

// Update saves an edited entry and reloads the list.
func (s *Service) Update(ctx context.Context, id string, u client.EntryUpdate) (*entry.Entry, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	if entry.IsBlank(u.Content) {
		s.notify(MsgEmpty, true)
		return nil, ErrEmptyContent
	}
	updated, err := s.Store.Update(ctx, id, u)
	if err != nil {
		s.logger().Error("updating entry failed", zap.String("id", id), zap.Error(err))
		s.notify(MsgUpdateFailed, true)
		return nil, err
	}
	s.notify(MsgUpdated, false)
	_, _ = s.Reload(ctx)
	return updated, nil
}

// Delete removes an entry. The list is reloaded once, and only after the
// server confirmed the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		s.logger().Error("deleting entry failed", zap.String("id", id), zap.Error(err))
		s.notify(MsgDeleteFailed, true)
		return err
	}
	s.logger().Info("entry deleted", zap.String("id", id))
	s.notify(MsgDeleted, false)
	_, _ = s.Reload(ctx)
	return nil
}

// Question asks the backend for a reflection prompt.
func (s *Service) Question(ctx context.Context, suggestion string) (string, error) {
	if s.Store == nil {
		return "", ErrNoStore
	}
	q, err := s.Store.GenerateQuestion(ctx, strings.TrimSpace(suggestion))
	if err != nil {
		s.logger().Warn("generating question failed", zap.Error(err))
		s.notify(MsgQuestionFail, true)
		return "", err
	}
	return q, nil
}
