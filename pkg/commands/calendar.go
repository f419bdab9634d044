package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/calendar"
	"tableflip.dev/journal/pkg/tags"
)

func addCalendar(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	year := false
	var tagList []string

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show how many entries were written on each day of a month.",
		Example: `
journal calendar
journal calendar --on 2024-2-1
journal calendar --year --tag travel
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			on, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			c := calendar.Calendar{
				On:      time.Now(),
				Year:    year,
				Service: e.Service,
			}
			if on != nil {
				c.On = *on
			}
			for _, t := range tagList {
				c.Tags = append(c.Tags, tags.Split(t)...)
			}
			return output.HandleError(c.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, oo)
	cmd.Flags().BoolVar(&year, "year", false, "Show the whole year.")
	cmd.Flags().StringSliceVarP(&tagList, "tag", "t", nil, "Only count entries with this tag.")
	options.AddOutputArg(cmd, output)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletions)

	topLevel.AddCommand(cmd)
}
