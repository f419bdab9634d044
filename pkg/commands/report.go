package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/report"
	"tableflip.dev/journal/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	last := timeutil.DefaultWindow

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise the entries written over a recent window, by month.",
		Example: `
journal report
journal report --last 2w
journal report --last 1y
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			r := report.Report{
				Last:    last,
				Service: e.Service,
			}
			return output.HandleError(r.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow,
		"Window to report on, for example 1w, 2mo or 1y.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
