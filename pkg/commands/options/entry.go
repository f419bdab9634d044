package options

import (
	"github.com/spf13/cobra"
)

// EntryOptions
type EntryOptions struct {
	Title     string
	Content   string
	EntryDate string
	Tags      []string
	Media     []string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVar(&o.Title, "title", "",
		"Title of the entry.")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Content of the entry. Markup is kept as written.")
	cmd.Flags().StringVar(&o.EntryDate, "date", "",
		`When the entry happened, example: --date="2024-03-01T09:30". Defaults to now.`)
}

func AddTagArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag the entry. Repeat or comma separate for more.")
}

func AddMediaArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringArrayVarP(&o.Media, "media", "m", nil,
		"Attach an image, video or audio file. Repeat for more.")
}

// Changed returns pointers to the entry fields set on the command line, nil
// for the rest.
func (o *EntryOptions) Changed(cmd *cobra.Command) (title, content, date *string) {
	if cmd.Flags().Changed("title") {
		title = &o.Title
	}
	if cmd.Flags().Changed("content") {
		content = &o.Content
	}
	if cmd.Flags().Changed("date") {
		date = &o.EntryDate
	}
	return title, content, date
}
