package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/tags"
	"tableflip.dev/journal/pkg/timeutil"
)

// FilterOptions
type FilterOptions struct {
	Tags  []string
	Start string
	End   string
	Last  string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Only entries with this tag. Repeat or comma separate for more.")
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Only entries on or after this date, example: --start="2024-01-31".`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`Only entries on or before this date, example: --end="2024-02-29".`)
	cmd.Flags().StringVar(&o.Last, "last", "",
		"Only entries in this window ending today, for example 2w or 3mo. Overrides --start.")
}

// Filter turns the flags into a list filter. --last wins over --start.
func (o *FilterOptions) Filter(now time.Time) (client.Filter, error) {
	f := client.Filter{Start: o.Start, End: o.End}
	for _, t := range o.Tags {
		f.Tags = append(f.Tags, tags.Split(t)...)
	}
	if o.Last != "" {
		since, _, err := timeutil.Since(o.Last, now)
		if err != nil {
			return f, err
		}
		f.Start = since.Format(entry.LayoutDate)
	}
	for _, d := range []string{f.Start, f.End} {
		if _, err := entry.ParseTime(d); err != nil {
			return f, err
		}
	}
	return f, nil
}
