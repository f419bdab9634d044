// Package mcp provides the Model Context Protocol server integration for the journal.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/tags"
	"tableflip.dev/journal/pkg/timeutil"
)

// Service adapts the journal service to the shapes handed to MCP clients.
type Service struct {
	App *app.Service
	// Now is used to resolve relative windows, defaults to time.Now.
	Now func() time.Time
}

// ErrNotConfigured is returned when the service has nothing to talk to.
var ErrNotConfigured = errors.New("journal service is not configured")

// ListOptions narrows ListEntries.
type ListOptions struct {
	Tags  []string
	Start string
	End   string
	Last  string
	Limit int
}

// CreateOptions captures the parameters used to create a new entry.
type CreateOptions struct {
	Title     string
	Content   string
	EntryDate string
	Tags      []string
}

// UpdateOptions changes an entry. Nil fields keep their stored value.
type UpdateOptions struct {
	ID        string
	Title     *string
	Content   *string
	EntryDate *string
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	EntryDate   string   `json:"entryDate"`
	DisplayDate string   `json:"displayDate"`
	Created     string   `json:"created,omitempty"`
	Tags        []string `json:"tags"`
	Media       []string `json:"media,omitempty"`
}

// MonthSummary is one month of a report.
type MonthSummary struct {
	Month   string     `json:"month"`
	Count   int        `json:"count"`
	Entries []EntryDTO `json:"entries"`
}

// ReportDTO is the report projection.
type ReportDTO struct {
	Since  string         `json:"since"`
	Until  string         `json:"until"`
	Total  int            `json:"total"`
	Months []MonthSummary `json:"months"`
	Tags   []entry.Tag    `json:"tags"`
}

// NewService wraps svc for the MCP server.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ready() error {
	if s == nil || s.App == nil || s.App.Store == nil {
		return ErrNotConfigured
	}
	return nil
}

// ListEntries returns entries newest first. The shared list filter is left
// untouched, the query goes to the store directly.
func (s *Service) ListEntries(ctx context.Context, opts ListOptions) ([]EntryDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	f := client.Filter{Start: strings.TrimSpace(opts.Start), End: strings.TrimSpace(opts.End)}
	for _, t := range opts.Tags {
		f.Tags = append(f.Tags, tags.Split(t)...)
	}
	if last := strings.TrimSpace(opts.Last); last != "" {
		since, _, err := timeutil.Since(last, s.now())
		if err != nil {
			return nil, err
		}
		f.Start = since.Format(entry.LayoutDate)
	}
	for _, d := range []string{f.Start, f.End} {
		if _, err := entry.ParseTime(d); err != nil {
			return nil, err
		}
	}

	entries, err := s.App.Store.Entries(ctx, f)
	if err != nil {
		return nil, err
	}
	sorted := append([]*entry.Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryDate.After(sorted[j].EntryDate.Time)
	})
	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}
	out := make([]EntryDTO, 0, len(sorted))
	for _, e := range sorted {
		if e == nil {
			continue
		}
		out = append(out, summary(e))
	}
	return out, nil
}

// EntryByID fetches a single entry including its content.
func (s *Service) EntryByID(ctx context.Context, id string) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return EntryDTO{}, errors.New("entry id is required")
	}
	e, err := s.App.Entry(ctx, id)
	if err != nil {
		return EntryDTO{}, err
	}
	return detail(e), nil
}

// CreateEntry submits a new entry. Attachments are not accepted over MCP.
func (s *Service) CreateEntry(ctx context.Context, opts CreateOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	date := strings.TrimSpace(opts.EntryDate)
	if date != "" {
		when, err := entry.ParseTime(date)
		if err != nil {
			return EntryDTO{}, err
		}
		date = when.Local().Format(entry.LayoutInput)
	}
	in := tags.New(nil)
	for _, t := range opts.Tags {
		if err := in.AddAll(t); err != nil {
			return EntryDTO{}, err
		}
	}

	created, err := s.App.Submit(ctx, app.Draft{
		Title:     opts.Title,
		Content:   opts.Content,
		EntryDate: date,
		Tags:      in.Value(),
	})
	if err != nil {
		return EntryDTO{}, err
	}
	return detail(created), nil
}

// UpdateEntry merges the provided fields into the stored entry and saves it.
func (s *Service) UpdateEntry(ctx context.Context, opts UpdateOptions) (EntryDTO, error) {
	if err := s.ready(); err != nil {
		return EntryDTO{}, err
	}
	id := strings.TrimSpace(opts.ID)
	if id == "" {
		return EntryDTO{}, errors.New("entry id is required")
	}
	current, err := s.App.Entry(ctx, id)
	if err != nil {
		return EntryDTO{}, err
	}

	u := client.EntryUpdate{
		Title:     current.Title,
		Content:   current.Content,
		EntryDate: current.EntryDate.Input(),
	}
	if opts.Title != nil {
		u.Title = strings.TrimSpace(*opts.Title)
	}
	if opts.Content != nil {
		u.Content = *opts.Content
	}
	if opts.EntryDate != nil {
		when, err := entry.ParseTime(*opts.EntryDate)
		if err != nil {
			return EntryDTO{}, err
		}
		if !when.IsZero() {
			u.EntryDate = when.Local().Format(entry.LayoutInput)
		}
	}

	updated, err := s.App.Update(ctx, id, u)
	if err != nil {
		return EntryDTO{}, err
	}
	return detail(updated), nil
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("entry id is required")
	}
	return s.App.Delete(ctx, id)
}

// Tags lists the known tags with their counts.
func (s *Service) Tags(ctx context.Context) ([]entry.Tag, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.App.Tags(ctx)
}

// Question asks the backend for a reflection prompt.
func (s *Service) Question(ctx context.Context, suggestion string) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return s.App.Question(ctx, suggestion)
}

// Report summarises the window ending now, for example "2w" or "3mo".
func (s *Service) Report(ctx context.Context, window string) (ReportDTO, error) {
	if err := s.ready(); err != nil {
		return ReportDTO{}, err
	}
	if strings.TrimSpace(window) == "" {
		window = timeutil.DefaultWindow
	}
	now := s.now()
	since, _, err := timeutil.Since(window, now)
	if err != nil {
		return ReportDTO{}, err
	}
	res, err := s.App.Report(ctx, since, now)
	if err != nil {
		return ReportDTO{}, err
	}
	out := ReportDTO{
		Since:  res.Since.Format(entry.LayoutDate),
		Until:  res.Until.Format(entry.LayoutDate),
		Total:  res.Total,
		Months: make([]MonthSummary, 0, len(res.Sections)),
		Tags:   res.Tags,
	}
	for _, sec := range res.Sections {
		m := MonthSummary{Month: sec.Label(), Count: len(sec.Entries)}
		for _, e := range sec.Entries {
			m.Entries = append(m.Entries, summary(e))
		}
		out.Months = append(out.Months, m)
	}
	return out, nil
}

func summary(e *entry.Entry) EntryDTO {
	dto := EntryDTO{
		ID:          e.ID,
		Title:       entry.Sanitize(e.Title),
		Excerpt:     entry.Excerpt(e.Content, 120),
		EntryDate:   e.EntryDate.String(),
		DisplayDate: e.EntryDate.Display(),
		Tags:        append([]string{}, e.Tags...),
	}
	if !e.CreatedAt.IsZero() {
		dto.Created = e.CreatedAt.String()
	}
	return dto
}

func detail(e *entry.Entry) EntryDTO {
	dto := summary(e)
	dto.Excerpt = ""
	dto.Content = entry.PlainText(e.Content)
	for _, m := range e.Media {
		dto.Media = append(dto.Media, fmt.Sprintf("%s %s", m.Type, m))
	}
	return dto
}
