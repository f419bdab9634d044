package app

import (
	"context"
	"sort"
	"strings"
	"time"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
)

// ReportSection groups the entries written in one calendar month.
type ReportSection struct {
	Month   time.Time
	Entries []*entry.Entry
}

// Label renders the month the way timeline markers do.
func (r ReportSection) Label() string {
	return r.Month.Format("Jan 06")
}

// ReportResult summarises the journal for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Tags     []entry.Tag
	Total    int
}

// Report returns entries between the provided bounds grouped by month, oldest
// first, with per-tag counts for the window.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if s.Store == nil {
		return ReportResult{}, ErrNoStore
	}
	if since.After(until) {
		since, until = until, since
	}
	all, err := s.Store.Entries(ctx, client.Filter{
		Tags:  s.Filter().Tags,
		Start: since.Format(entry.LayoutDate),
		End:   until.Format(entry.LayoutDate),
	})
	if err != nil {
		s.notify(MsgLoadFailed, true)
		return ReportResult{}, err
	}

	grouped := make(map[time.Time][]*entry.Entry)
	counts := make(map[string]*entry.Tag)
	total := 0
	for _, e := range all {
		if e == nil || e.EntryDate.IsZero() {
			continue
		}
		d := e.EntryDate.Time
		if d.Before(since) || d.After(until) {
			continue
		}
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		grouped[month] = append(grouped[month], e)
		total++
		for _, t := range e.Tags {
			key := strings.ToLower(t)
			if c, ok := counts[key]; ok {
				c.Count++
			} else {
				counts[key] = &entry.Tag{Tag: t, Count: 1}
			}
		}
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	if total == 0 {
		return result, nil
	}

	months := make([]time.Time, 0, len(grouped))
	for m := range grouped {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	for _, m := range months {
		items := grouped[m]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EntryDate.Before(items[j].EntryDate.Time)
		})
		result.Sections = append(result.Sections, ReportSection{Month: m, Entries: items})
	}

	for _, c := range counts {
		result.Tags = append(result.Tags, *c)
	}
	sort.Slice(result.Tags, func(i, j int) bool {
		if result.Tags[i].Count != result.Tags[j].Count {
			return result.Tags[i].Count > result.Tags[j].Count
		}
		return result.Tags[i].Tag < result.Tags[j].Tag
	})
	return result, nil
}
