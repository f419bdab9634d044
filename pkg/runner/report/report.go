package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/timeutil"
)

type Report struct {
	Last string
	Now  func() time.Time

	Service *app.Service
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	until := now()
	since, label, err := timeutil.Since(n.Last, until)
	if err != nil {
		return err
	}
	result, err := n.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	render(out, result, label)
	return nil
}

func render(out io.Writer, result app.ReportResult, label string) {
	since := result.Since.Local().Format("2006-01-02")
	until := result.Until.Local().Format("2006-01-02")
	_, _ = fmt.Fprintf(out, "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(out, "  No entries found in this window.")
		_, _ = fmt.Fprintln(out)
		return
	}

	pp := printers.PrettyPrint{Out: out}
	for _, section := range result.Sections {
		_, _ = fmt.Fprintln(out)
		pp.TitleWithCount(section.Label(), len(section.Entries))
		pp.Entries(section.Entries...)
	}
	if len(result.Tags) > 0 {
		pp.Title("Tags")
		pp.Tags(result.Tags)
	}
	_, _ = fmt.Fprintf(out, "%d entries\n", result.Total)
}
