package printers

import (
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/journal/pkg/entry"
)

// Tags prints known tags with their usage counts, most used first as the
// server orders them.
func (pp *PrettyPrint) Tags(tags []entry.Tag) {
	if len(tags) == 0 {
		pp.Entries()
		return
	}
	table := uitable.New()
	table.MaxColWidth = uint(pp.width() / 2)
	table.AddRow("TAG", "ENTRIES")
	for _, t := range tags {
		table.AddRow(entry.Sanitize(t.Tag), t.Count)
	}
	_, _ = fmt.Fprintln(pp.out(), table)
}
