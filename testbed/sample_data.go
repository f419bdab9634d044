package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/journal/pkg/entry"
)

var titles = []string{
	"Morning pages",
	"Harbour walk",
	"Long call with Sam",
	"First swim of the year",
	"",
	"Garden notes",
	"Slow Sunday",
	"Trip planning",
	"A write up of the storage refactor that ran far longer than anybody planned",
}

var bodies = []string{
	"<p>Woke before the alarm. Coffee on the step while the street was still quiet.</p>",
	"<p>Cold but bright. Counted <strong>eleven</strong> boats.</p>",
	"<ul><li>books</li><li>the move</li><li>what to cook on Friday</li></ul>",
	"<p>Water was freezing &amp; perfect.</p>",
	"<p>No title today, just a note that the tomatoes are finally turning.</p>",
}

var sampleTags = [][]string{
	{"morning"},
	{"travel", "outside"},
	nil,
	{"outside"},
	{"garden"},
	{"family", "travel"},
}

var questions = []string{
	"What surprised you this week?",
	"Which moment today would you like to remember in a year?",
	"What did you leave unsaid, and why?",
	"Where did you feel most like yourself recently?",
}

// sampleEntries spreads n entries over the last span days before now.
func sampleEntries(n, span int, now time.Time) []*entry.Entry {
	if n <= 0 {
		return nil
	}
	if span < 1 {
		span = 1
	}
	out := make([]*entry.Entry, 0, n)
	for i := 0; i < n; i++ {
		offset := time.Duration(i*span*24/n) * time.Hour
		date := now.Add(-offset).Truncate(time.Hour)
		out = append(out, &entry.Entry{
			ID:        uuid.NewString(),
			Title:     titles[i%len(titles)],
			Content:   bodies[i%len(bodies)] + fmt.Sprintf("<p>Sample %d.</p>", i+1),
			EntryDate: entry.Timestamp{Time: date},
			CreatedAt: entry.Timestamp{Time: date},
			Tags:      sampleTags[i%len(sampleTags)],
		})
	}
	return out
}
