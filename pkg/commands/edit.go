package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change the title, content or date of an entry.",
		Example: `
journal edit 0f3c9a --title "Harbour walk"
journal edit 0f3c9a -c "<p>Cold but bright.</p>" --date 2024-02-14T08:00
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := io.Resolve(args)
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			title, content, date := eo.Changed(cmd)
			ed := edit.Edit{
				ID:        id,
				Title:     title,
				Content:   content,
				EntryDate: date,
				Service:   e.Service,
			}
			return output.HandleError(ed.Do(context.Background()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddIDArg(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
