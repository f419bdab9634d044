package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print configuration and local state.",
		Example: `
journal info
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			i := info.Info{Config: e.Config, Preferences: e.Prefs}
			return output.HandleError(i.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
