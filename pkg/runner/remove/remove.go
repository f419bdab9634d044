package remove

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/printers"
	"tableflip.dev/journal/pkg/snake"
)

// Confirm asks the user a yes/no question.
type Confirm func(label string) (bool, error)

type Remove struct {
	ID  string
	Yes bool

	Service *app.Service
	Confirm Confirm
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if !n.Yes {
		e, err := n.Service.Entry(ctx, n.ID)
		if err != nil {
			return err
		}
		confirm := n.Confirm
		if confirm == nil {
			confirm = (&snake.Wizard{}).Confirm
		}
		label := fmt.Sprintf("Delete %q? This action cannot be undone", entry.Sanitize(e.Title))
		ok, err := confirm(label)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	button := &printers.Progress{}
	button.SetLabel("Delete")
	return app.WithBusy(button, "Deleting...", func() error {
		return n.Service.Delete(ctx, n.ID)
	})
}
