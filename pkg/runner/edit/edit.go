package edit

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
)

type Edit struct {
	ID string
	// Nil fields keep the stored value.
	Title     *string
	Content   *string
	EntryDate *string

	Service *app.Service
	Out     io.Writer
}

// textEditor is the editor behind a non-interactive edit: its content is
// whatever the flags supplied.
type textEditor struct {
	data string
}

func (t *textEditor) Data() string     { return t.data }
func (t *textEditor) SetData(s string) { t.data = s }
func (t *textEditor) Destroy()         { t.data = "" }

func (n *Edit) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not edit, no service")
	}
	if n.Title == nil && n.Content == nil && n.EntryDate == nil {
		return errors.New("nothing to change, pass --title, --content or --date")
	}

	session, err := n.Service.Edit(ctx, n.ID, func(content string) (app.Editor, error) {
		return &textEditor{data: content}, nil
	})
	if err != nil {
		return err
	}
	defer session.Cancel()

	if n.Content != nil {
		ed, err := session.Editor()
		if err != nil {
			return err
		}
		ed.SetData(*n.Content)
	}
	if n.Title != nil {
		session.Title = *n.Title
	}
	if n.EntryDate != nil {
		session.EntryDate = *n.EntryDate
	}

	button := &printers.Progress{}
	button.SetLabel("Save Changes")
	return app.WithBusy(button, "Saving...", func() error {
		e, err := session.Save(ctx, n.Service)
		if err != nil {
			return err
		}
		pp := printers.PrettyPrint{Out: n.Out}
		pp.NewLine()
		pp.Entry(e)
		return nil
	})
}
