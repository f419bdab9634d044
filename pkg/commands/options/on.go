package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/entry"
)

const (
	layoutMonth    = "2006-01"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Pick the month to show, example: --on="2024-02", --on="2024-02-28" or --on="2/28".`)
}

// GetOn parses --on. Full dates and months are read the way entry dates
// are; a month/day without a year means this year.
func (o *OnOptions) GetOn() (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(layoutMonth, o.OnString, time.Local); err == nil {
		return &t, nil
	}
	t, err := entry.ParseTime(o.OnString)
	if err != nil {
		short, serr := time.ParseInLocation(layoutISOShort, o.OnString, time.Local)
		if serr != nil {
			return nil, err
		}
		t = short.AddDate(time.Now().Year(), 0, 0)
	}
	return &t, nil
}
