package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/me/cpusched/pkg/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		limit     int
		offset    int
		algorithm string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored simulations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("limit", strconv.Itoa(limit))
			q.Set("offset", strconv.Itoa(offset))
			if algorithm != "" {
				q.Set("algorithm", algorithm)
			}

			resp, err := client.Get("/api/v1/simulations/?" + q.Encode())
			if err != nil {
				return fmt.Errorf("list simulations: %w", err)
			}

			var data []model.SimulationSummary
			if err := resp.decode(&data); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(data) == 0 {
				fmt.Fprintln(out, "No simulations found.")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"ID", "NAME", "POLICY", "PROCESSES", "MAKESPAN", "AVG WAIT", "CREATED"})
			for _, s := range data {
				table.Append([]string{
					s.ID,
					s.Name,
					s.Policy.String(),
					strconv.Itoa(s.ProcessCount),
					humanize.Comma(int64(s.Makespan)),
					fmt.Sprintf("%.2f", s.AverageWaitingTime),
					humanize.Time(s.CreatedAt),
				})
			}
			table.Render()

			if resp.Pagination != nil && resp.Pagination.HasMore {
				fmt.Fprintf(out, "\n(%d of %d shown)\n", len(data), resp.Pagination.Total)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of simulations to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of simulations to skip")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Only show simulations using this algorithm")

	return cmd
}
