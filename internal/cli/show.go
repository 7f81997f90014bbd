package cli

import (
	"fmt"
	"net/url"

	"github.com/me/cpusched/internal/render"
	"github.com/me/cpusched/pkg/model"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var (
		output string
		width  int
	)

	cmd := &cobra.Command{
		Use:   "show <simulation_id>",
		Short: "Show a stored simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			resp, err := client.Get("/api/v1/simulations/" + url.PathEscape(args[0]))
			if err != nil {
				return fmt.Errorf("get simulation: %w", err)
			}

			var sim model.Simulation
			if err := resp.decode(&sim); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == outputJSON {
				return printJSON(out, sim)
			}

			fmt.Fprintf(out, "Simulation: %s\n", sim.ID)
			fmt.Fprintf(out, "  Name:      %s\n", sim.Name)
			fmt.Fprintf(out, "  Processes: %d\n", len(sim.Processes))
			fmt.Fprintf(out, "  Created:   %s\n\n", sim.CreatedAt.Format("2006-01-02 15:04:05 MST"))

			if sim.Report == nil {
				return fmt.Errorf("simulation %s has no report", sim.ID)
			}
			render.TimelineTable(out, sim.Timeline)
			fmt.Fprintln(out)
			return printResult(out, &model.ScheduleResult{
				Policy:   sim.Policy,
				Timeline: sim.Timeline,
				Report:   sim.Report,
			}, width)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json")
	cmd.Flags().IntVar(&width, "width", render.DefaultGanttWidth, "Gantt chart width in columns")

	return cmd
}
