package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/timeline"
)

func addTimeline(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw entries on a time axis with month markers.",
		Example: `
journal timeline
journal timeline --start 2024-01-01 --end 2024-06-30
journal timeline --last 1y --tag travel
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
			tl := timeline.Timeline{
				Filter:  f,
				Width:   terminalWidth(),
				Service: e.Service,
			}
			return output.HandleError(tl.Do(context.Background()))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletions)

	topLevel.AddCommand(cmd)
}

// terminalWidth is the width of stdout, or zero when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}
