package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/client"
	"tableflip.dev/journal/pkg/printers"
)

type List struct {
	ShowID bool
	JSON   bool
	Filter client.Filter

	Service *app.Service
	Out     io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	n.Service.SetFilter(n.Filter)
	entries, err := n.Service.Reload(ctx)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: out}
	pp.NewLine()
	pp.TitleWithCount(title(n.Filter), len(entries))
	pp.Entries(entries...)
	return nil
}

func title(f client.Filter) string {
	if f.IsZero() {
		return "Journal"
	}
	t := "Journal"
	for _, tag := range f.Tags {
		t += " #" + tag
	}
	switch {
	case f.Start != "" && f.End != "":
		t += fmt.Sprintf(" (%s → %s)", f.Start, f.End)
	case f.Start != "":
		t += fmt.Sprintf(" (since %s)", f.Start)
	case f.End != "":
		t += fmt.Sprintf(" (until %s)", f.End)
	}
	return t
}
