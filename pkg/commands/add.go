package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/add"
	"tableflip.dev/journal/pkg/snake"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Write a new entry.",
		Example: `
journal add "Long walk by the harbour."
journal add --title "Tuesday" -c "<p>Rain all day.</p>" -t weather -t home
journal add -c "Beach day" --media ./beach.jpg
journal add -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && eo.Content == "" {
				eo.Content = strings.Join(args, " ")
			}
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			ctx := context.Background()

			if i.Interactive {
				w := &snake.Wizard{Whitelist: e.knownTags(ctx)}
				a, err := w.Entry(snake.Answers{
					Title:     eo.Title,
					Content:   eo.Content,
					EntryDate: eo.EntryDate,
					Tags:      eo.Tags,
				})
				if err != nil {
					return output.HandleError(err)
				}
				eo.Title, eo.Content, eo.EntryDate, eo.Tags = a.Title, a.Content, a.EntryDate, a.Tags
			}

			a := add.Add{
				Title:     eo.Title,
				Content:   eo.Content,
				EntryDate: eo.EntryDate,
				Tags:      eo.Tags,
				Media:     eo.Media,
				Service:   e.Service,
			}
			return output.HandleError(a.Do(ctx))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddTagArgs(cmd, eo)
	options.AddMediaArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletions)

	topLevel.AddCommand(cmd)
}
