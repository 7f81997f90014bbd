package cli

import (
	"fmt"

	"github.com/me/cpusched/internal/parser"
	"github.com/me/cpusched/pkg/model"
	"github.com/spf13/cobra"
)

func newSubmitCmd() *cobra.Command {
	var (
		algorithm string
		quantum   int
		name      string
	)

	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Run a process set on the server and store the simulation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parser.New(logger).ParseFile(args[0])
			if err != nil {
				return err
			}
			if algorithm != "" {
				doc.Algorithm = algorithm
			}
			if quantum > 0 {
				doc.Quantum = quantum
			}
			if name != "" {
				doc.Name = name
			}

			// Catch obvious mistakes before the round trip.
			if apiErr := parser.NewValidator(logger).Validate(doc); apiErr != nil {
				return fmt.Errorf("%s", apiErr.Detail())
			}

			resp, err := client.Post("/api/v1/simulations/", model.ScheduleRequest{
				Name:      doc.Name,
				Algorithm: doc.Algorithm,
				Quantum:   doc.Quantum,
				Processes: model.NewProcessRequests(doc.Processes),
			})
			if err != nil {
				return fmt.Errorf("submit simulation: %w", err)
			}

			var sim model.Simulation
			if err := resp.decode(&sim); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Simulation created: %s\n", sim.ID)
			fmt.Fprintf(out, "  Name:     %s\n", sim.Name)
			fmt.Fprintf(out, "  Policy:   %s\n", sim.Policy)
			if sim.Report != nil {
				fmt.Fprintf(out, "  Makespan: %d\n", sim.Report.Makespan)
				fmt.Fprintf(out, "  Avg wait: %.2f\n", sim.Report.Aggregate.WaitingTime)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Algorithm: fcfs, sjf, rr (overrides the file)")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Round-Robin quantum (overrides the file)")
	cmd.Flags().StringVar(&name, "name", "", "Simulation name (defaults to the file name)")

	return cmd
}
