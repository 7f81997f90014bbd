package cli

import (
	"fmt"

	"github.com/me/cpusched/internal/parser"
	"github.com/me/cpusched/internal/workload"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	spec := workload.DefaultSpec()
	var (
		name      string
		algorithm string
		quantum   int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic process set as YAML",
		Long: "Generate a process set whose fields are JavaScript expressions.\n" +
			"Expressions see i (0-based index), n (count) and rand(lo, hi).\n\n" +
			"  cpusched generate --count 5 --arrival 'i * 2' --burst 'rand(1, 8)' --seed 7",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			procs, err := workload.Generate(spec)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			logger.Debug("generated process set", "count", len(procs), "seed", spec.Seed)

			data, err := parser.Marshal(&parser.Document{
				Name:      name,
				Algorithm: algorithm,
				Quantum:   quantum,
				Processes: procs,
			})
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().IntVarP(&spec.Count, "count", "n", spec.Count, "Number of processes")
	cmd.Flags().StringVar(&spec.Prefix, "prefix", spec.Prefix, "Process id prefix")
	cmd.Flags().StringVar(&spec.Arrival, "arrival", spec.Arrival, "Arrival time expression")
	cmd.Flags().StringVar(&spec.Burst, "burst", spec.Burst, "Burst time expression")
	cmd.Flags().StringVar(&spec.Priority, "priority", spec.Priority, "Priority expression")
	cmd.Flags().Int64Var(&spec.Seed, "seed", spec.Seed, "Seed for rand()")
	cmd.Flags().StringVar(&name, "name", "", "Document name")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Algorithm to record in the document")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, "Quantum to record in the document")

	return cmd
}
