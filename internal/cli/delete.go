package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <simulation_id>",
		Short: "Delete a stored simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if _, err := client.Delete("/api/v1/simulations/" + url.PathEscape(id)); err != nil {
				return fmt.Errorf("delete simulation: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Simulation deleted: %s\n", id)
			return nil
		},
	}
}
