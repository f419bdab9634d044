package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/journal/pkg/client"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// errorBody is what --json prints for a failed command.
type errorBody struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Server  string `json:"server,omitempty"`
	Network bool   `json:"network,omitempty"`
}

// HandleError prints err as JSON when --json is set and swallows it, so
// scripts read the failure from stdout. Without --json err is returned.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	body := errorBody{Error: err.Error(), Network: client.IsNetwork(err)}
	var se *client.ServerError
	if errors.As(err, &se) {
		body.Status = se.StatusCode
		body.Server = se.Message
	}
	b, merr := json.Marshal(body)
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
