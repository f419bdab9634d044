package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List journal entries, newest first.",
		Example: `
journal list
journal list --tag travel --last 3mo
journal list --start 2024-01-01 --end 2024-01-31 --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := fo.Filter(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			l := list.List{
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Filter:  f,
				Service: e.Service,
			}
			return output.HandleError(l.Do(context.Background()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletions)

	topLevel.AddCommand(cmd)
}
