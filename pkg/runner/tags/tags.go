package tags

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/journal/pkg/app"
	"tableflip.dev/journal/pkg/printers"
	tagset "tableflip.dev/journal/pkg/tags"
)

type Tags struct {
	// Match narrows the list with fuzzy matching when set.
	Match string

	Service *app.Service
	Out     io.Writer
}

func (n *Tags) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list tags, no service")
	}
	all, err := n.Service.Tags(ctx)
	if err != nil {
		return err
	}
	if n.Match != "" {
		byName := make(map[string]int, len(all))
		names := make([]string, 0, len(all))
		for i, t := range all {
			byName[t.Tag] = i
			names = append(names, t.Tag)
		}
		matched := all[:0:0]
		for _, name := range tagset.New(names).Suggest(n.Match) {
			matched = append(matched, all[byName[name]])
		}
		all = matched
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Tags(all)
	return nil
}
