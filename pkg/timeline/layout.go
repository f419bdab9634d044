// Package timeline places journal entries along a horizontal time axis and
// manages the hover previews shown for each placed marker.
package timeline

import (
	"sort"
	"time"

	"tableflip.dev/journal/pkg/entry"
)

// Range is the span of time the axis covers.
type Range struct {
	Start time.Time
	End   time.Time
}

// Span is End-Start, never negative.
func (r Range) Span() time.Duration {
	if r.End.Before(r.Start) {
		return 0
	}
	return r.End.Sub(r.Start)
}

// Normalize swaps reversed bounds.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Placement is an entry and its position on the axis, in percent.
type Placement struct {
	Entry    *entry.Entry
	Position float64
}

// Sort returns a copy of entries ordered by entry date. Entries sharing a
// date keep their relative order.
func Sort(entries []*entry.Entry) []*entry.Entry {
	sorted := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EntryDate.Before(sorted[j].EntryDate.Time)
	})
	return sorted
}

// Infer returns the range spanned by the entries, or false when there are none.
func Infer(entries []*entry.Entry) (Range, bool) {
	sorted := Sort(entries)
	if len(sorted) == 0 {
		return Range{}, false
	}
	return Range{
		Start: sorted[0].EntryDate.Time,
		End:   sorted[len(sorted)-1].EntryDate.Time,
	}, true
}

// Resolve fills whichever bound of explicit is zero from the entries' own
// range. A nil explicit range means the entries' range is used as is.
func Resolve(entries []*entry.Entry, explicit *Range) (Range, bool) {
	inferred, ok := Infer(entries)
	if explicit == nil {
		return inferred, ok
	}
	r := *explicit
	if r.Start.IsZero() {
		if !ok {
			return Range{}, false
		}
		r.Start = inferred.Start
	}
	if r.End.IsZero() {
		if !ok {
			return Range{}, false
		}
		r.End = inferred.End
	}
	return r.Normalize(), true
}

// Position maps t onto r as a percentage clamped to [0,100]. A range with no
// span puts everything in the middle.
func Position(t time.Time, r Range) float64 {
	r = r.Normalize()
	span := r.Span()
	if span <= 0 {
		return 50
	}
	p := float64(t.Sub(r.Start)) / float64(span) * 100
	return clamp(p, 0, 100)
}

// Layout sorts the entries and positions each one on the axis. When explicit
// is nil the range is inferred from the entries.
func Layout(entries []*entry.Entry, explicit *Range) ([]Placement, Range) {
	sorted := Sort(entries)
	r, ok := Resolve(sorted, explicit)
	if !ok {
		return nil, Range{}
	}
	out := make([]Placement, len(sorted))
	for i, e := range sorted {
		out[i] = Placement{Entry: e, Position: Position(e.EntryDate.Time, r)}
	}
	return out, r
}

// Column converts a position into a cell index on an axis of width cells.
func Column(position float64, width int) int {
	if width <= 1 {
		return 0
	}
	c := int(position/100*float64(width-1) + 0.5)
	if c < 0 {
		return 0
	}
	if c > width-1 {
		return width - 1
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseRange builds an explicit range from filter bounds. Either bound may be
// empty; a date-only end covers the whole day. Nil means no explicit range.
func ParseRange(start, end string) (*Range, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	var r Range
	var err error
	if r.Start, err = entry.ParseTime(start); err != nil {
		return nil, err
	}
	if r.End, err = entry.ParseTime(end); err != nil {
		return nil, err
	}
	if entry.IsDateOnly(end) {
		r.End = r.End.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &r, nil
}
