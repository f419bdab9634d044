package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/media"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/tags"
)

type Add struct {
	Title     string
	Content   string
	EntryDate string
	Tags      []string
	Media     []string

	Service *app.Service
	Out     io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	selected := tags.New(nil)
	for _, t := range n.Tags {
		if err := selected.AddAll(t); err != nil {
			return err
		}
	}

	files := make([]media.File, 0, len(n.Media))
	for _, p := range n.Media {
		f, err := media.Stat(p)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	button := &printers.Progress{}
	button.SetLabel("Save Entry")
	return app.WithBusy(button, "Saving...", func() error {
		e, err := n.Service.Submit(ctx, app.Draft{
			Title:     n.Title,
			Content:   n.Content,
			EntryDate: n.EntryDate,
			Tags:      selected.Value(),
			Files:     files,
		})
		if err != nil {
			return err
		}
		pp := printers.PrettyPrint{Out: n.Out}
		pp.NewLine()
		pp.Entries(e)
		return nil
	})
}
