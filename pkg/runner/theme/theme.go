package theme

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/journal/pkg/store"
)

type Theme struct {
	// Set is "dark", "light", "toggle" or empty to print the current theme.
	Set string

	Preferences store.Preferences
	Out         io.Writer
}

func (n *Theme) Do(_ context.Context) error {
	if n.Preferences == nil {
		return errors.New("can not change theme, no preferences")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}

	current := n.Preferences.Theme()
	next := current
	switch n.Set {
	case "":
	case "toggle":
		next = current.Toggle()
	default:
		t, err := store.ParseTheme(n.Set)
		if err != nil {
			return err
		}
		next = t
	}
	if next != current {
		if err := n.Preferences.SetTheme(next); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, next)
	return err
}
