package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/commands/options"
	"tableflip.dev/journal/pkg/runner/question"
)

func addQuestion(topLevel *cobra.Command) {
	suggestion := ""

	cmd := &cobra.Command{
		Use:     "question",
		Aliases: []string{"ask"},
		Short:   "Ask the server for a reflection question to write about.",
		Example: `
journal question
journal question --suggestion "gratitude"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer e.Close()
			q := question.Question{
				Suggestion: suggestion,
				Theme:      e.Prefs.Theme(),
				Width:      terminalWidth(),
				Service:    e.Service,
			}
			return output.HandleError(q.Do(context.Background()))
		},
	}

	cmd.Flags().StringVar(&suggestion, "suggestion", "",
		"Steer the question toward a topic.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
