package calendar

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/printers"
)

type Calendar struct {
	On   time.Time
	Year bool
	Tags []string

	Service *app.Service
	Out     io.Writer
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not draw calendar, no service")
	}
	on := n.On
	if on.IsZero() {
		on = time.Now()
	}
	start := time.Date(on.Year(), on.Month(), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	if n.Year {
		start = time.Date(on.Year(), 1, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(on.Year(), 12, 31, 0, 0, 0, 0, time.Local)
	}
	n.Service.SetFilter(client.Filter{
		Tags:  n.Tags,
		Start: start.Format(entry.LayoutDate),
		End:   end.Format(entry.LayoutDate),
	})
	entries, err := n.Service.Reload(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	if n.Year {
		pp.CalendarYear(on, entries...)
	} else {
		pp.Calendar(on, entries...)
	}
	return nil
}
