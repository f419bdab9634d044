package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/media"
)

// memStore is an app.Store held in memory. Every call sleeps for latency so
// busy states stay on screen long enough to see.
type memStore struct {
	mu         sync.Mutex
	entries    []*entry.Entry
	latency    time.Duration
	failDelete bool
}

func newMemStore(entries []*entry.Entry, latency time.Duration) *memStore {
	return &memStore{entries: entries, latency: latency}
}

func (s *memStore) wait(ctx context.Context) error {
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *memStore) Tags(ctx context.Context) ([]entry.Tag, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	for _, e := range s.entries {
		for _, t := range e.Tags {
			counts[t]++
		}
	}
	out := make([]entry.Tag, 0, len(counts))
	for t, n := range counts {
		out = append(out, entry.Tag{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out, nil
}

func (s *memStore) Entries(ctx context.Context, f client.Filter) ([]*entry.Entry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	start, _ := entry.ParseTime(f.Start)
	end, _ := entry.ParseTime(f.End)
	if !end.IsZero() && entry.IsDateOnly(f.End) {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entry.Entry
	for _, e := range s.entries {
		if !start.IsZero() && e.EntryDate.Before(start) {
			continue
		}
		if !end.IsZero() && e.EntryDate.After(end) {
			continue
		}
		if !hasAnyTag(e, f.Tags) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate.Time) })
	return out, nil
}

func hasAnyTag(e *entry.Entry, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if e.HasTag(t) {
			return true
		}
	}
	return false
}

func (s *memStore) Entry(ctx context.Context, id string) (*entry.Entry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("entry %s not found", id)
}

func (s *memStore) Create(ctx context.Context, n client.NewEntry, files []media.File) (*entry.Entry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	date, err := entry.ParseTime(n.EntryDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	e := &entry.Entry{
		ID:        uuid.NewString(),
		Title:     n.Title,
		Content:   n.Content,
		EntryDate: entry.Timestamp{Time: date},
		CreatedAt: entry.Timestamp{Time: now},
		UpdatedAt: entry.Timestamp{Time: now},
		Tags:      n.Tags,
	}
	for _, f := range files {
		kind, _ := f.Kind()
		e.Media = append(e.Media, entry.MediaItem{Type: kind, Filename: f.Name, Size: f.Size})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *memStore) Update(ctx context.Context, id string, u client.EntryUpdate) (*entry.Entry, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID != id {
			continue
		}
		e.Title, e.Content = u.Title, u.Content
		if d, err := entry.ParseTime(u.EntryDate); err == nil && !d.IsZero() {
			e.EntryDate = entry.Timestamp{Time: d}
		}
		e.UpdatedAt = entry.Timestamp{Time: time.Now()}
		return e, nil
	}
	return nil, fmt.Errorf("entry %s not found", id)
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	if s.failDelete {
		return errors.New("testbed: delete disabled")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("entry %s not found", id)
}

func (s *memStore) GenerateQuestion(ctx context.Context, suggestion string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	q := questions[time.Now().UnixNano()%int64(len(questions))]
	if suggestion = strings.TrimSpace(suggestion); suggestion != "" {
		q = fmt.Sprintf("Thinking about %s: %s", suggestion, strings.ToLower(q[:1])+q[1:])
	}
	return q, nil
}
