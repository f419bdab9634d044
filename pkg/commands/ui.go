package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	teaui "tableflip.dev/journal/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive timeline.",
		Example: `
journal ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return teaui.Run(ctx, teaui.Options{
				Service:     e.Service,
				Preferences: e.Prefs,
				Watcher:     e.Prefs,
				Log:         e.Log,
			})
		},
	}

	topLevel.AddCommand(cmd)
}
