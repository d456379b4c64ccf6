package cli

import (
	"fmt"
	"strings"

	infrahttp "journal_backend/internal/platform/http"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand(deps Deps) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check the health endpoint of a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := infrahttp.Probe(cmd.Context(), deps.HTTPClient, strings.TrimRight(baseURL, "/"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(string(body)))
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:3000", "base URL of the journal API")

	return cmd
}
