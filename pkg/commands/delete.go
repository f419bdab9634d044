package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete an entry. Asks first unless --yes is given.",
		Example: `
journal delete 0f3c9a
journal rm 0f3c9a --yes
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
			r := remove.Remove{
				ID:      id,
				Yes:     co.Yes,
				Service: e.Service,
			}
			return output.HandleError(r.Do(context.Background()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddIDArg(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
