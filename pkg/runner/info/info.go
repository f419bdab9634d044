package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/journal/pkg/store"
)

type Info struct {
	Config      store.Config
	Preferences store.Preferences
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, store.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:   ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.server: ", n.Config.Server())
	_, _ = fmt.Fprintln(out, "Config.timeout:", n.Config.Timeout())
	_, _ = fmt.Fprintln(out, "Config.env:    ", n.Config.Env())
	if f := n.Config.LogFile(); f != "" {
		_, _ = fmt.Fprintln(out, "Config.log:    ", f)
	}

	if n.Preferences == nil {
		return fmt.Errorf("failed to open preferences")
	}
	_, _ = fmt.Fprintln(out, "Theme:         ", n.Preferences.Theme())
	if f := n.Preferences.Filter(); len(f.Tags) > 0 || f.Start != "" || f.End != "" {
		_, _ = fmt.Fprintf(out, "Filter:         tags=%v start=%q end=%q\n", f.Tags, f.Start, f.End)
	}
	if d, ok := n.Preferences.Draft(); ok {
		_, _ = fmt.Fprintf(out, "Draft:          %q saved\n", d.Title)
	}
	return nil
}
