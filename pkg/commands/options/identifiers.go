package options

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
	ID     string
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each entry.")
}

func AddIDArg(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Entry ID, instead of the first argument.")
}

// Resolve picks the entry ID from --id or the first argument. Giving both
// is an error unless they agree.
func (o *IDOptions) Resolve(args []string) (string, error) {
	flag := strings.TrimSpace(o.ID)
	arg := ""
	if len(args) > 0 {
		arg = strings.TrimSpace(args[0])
	}
	switch {
	case flag != "" && arg != "" && flag != arg:
		return "", errors.New("entry id given twice with different values")
	case flag != "":
		return flag, nil
	case arg != "":
		return arg, nil
	}
	return "", errors.New("entry id is required")
}
