package timeline

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/printers"
	tl "tableflip.dev/journal/pkg/timeline"
)

type Timeline struct {
	Filter client.Filter
	Width  int

	Service *app.Service
	Out     io.Writer
}

func (n *Timeline) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not draw timeline, no service")
	}
	explicit, err := tl.ParseRange(n.Filter.Start, n.Filter.End)
	if err != nil {
		return err
	}
	n.Service.SetFilter(n.Filter)
	entries, err := n.Service.Reload(ctx)
	if err != nil {
		return err
	}
	placements, r := tl.Layout(entries, explicit)

	pp := printers.PrettyPrint{Out: n.Out, Width: n.Width}
	pp.NewLine()
	pp.TitleWithCount("Timeline", len(placements))
	pp.Timeline(placements, r)
	return nil
}
