package question

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/store"
)

type Question struct {
	Suggestion string
	Theme      store.Theme
	Width      int

	Service *app.Service
	Out     io.Writer
}

func (n *Question) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not ask, no service")
	}
	var q string
	button := &printers.Progress{}
	button.SetLabel("Generate New Question")
	err := app.WithBusy(button, "Generating...", func() error {
		var err error
		q, err = n.Service.Question(ctx, n.Suggestion)
		return err
	})
	if err != nil {
		return err
	}
	style := string(n.Theme)
	if style == "" {
		style = string(store.Dark)
	}
	pp := printers.PrettyPrint{Out: n.Out, Width: n.Width}
	pp.Question(q, style)
	return nil
}
