package cli

import (
	"fmt"
	"io"

	"github.com/me/cpusched/internal/parser"
	"github.com/me/cpusched/internal/render"
	"github.com/me/cpusched/internal/scheduler"
	"github.com/me/cpusched/pkg/model"
	"github.com/spf13/cobra"
)

// defaultQuantum is the Round-Robin quantum used when neither the document
// nor --quantum gives one.
const defaultQuantum = 2

func newSimulateCmd() *cobra.Command {
	var (
		algorithm string
		quantum   int
		output    string
		width     int
		format    string
	)

	cmd := &cobra.Command{
		Use:   "simulate <file>",
		Short: "Schedule a process set locally and print the results",
		Long: "Schedule the processes in a YAML, JSON or CSV file (\"-\" reads stdin).\n" +
			"Without --algorithm and without an algorithm in the file, all three\n" +
			"algorithms are run one after another.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			if quantum < 0 {
				return fmt.Errorf("--quantum must be > 0")
			}

			doc, err := loadDocument(cmd, args[0], parser.Format(format))
			if err != nil {
				return err
			}
			if algorithm != "" {
				doc.Algorithm = algorithm
			}
			if quantum > 0 {
				doc.Quantum = quantum
			}

			if apiErr := parser.NewValidator(logger).Validate(doc); apiErr != nil {
				return fmt.Errorf("%s", apiErr.Detail())
			}

			policies, err := policiesFor(doc)
			if err != nil {
				return err
			}

			engine := scheduler.NewEngine(logger)
			out := cmd.OutOrStdout()
			var results []jsonResult
			for _, p := range policies {
				result, err := engine.Run(p, doc.Processes)
				if err != nil {
					return err
				}
				if output == outputJSON {
					results = append(results, jsonResult{ScheduleResult: result, Bars: render.Bars(result.Timeline)})
					continue
				}
				if err := printResult(out, result, width); err != nil {
					return err
				}
			}

			if output == outputJSON {
				if len(results) == 1 {
					return printJSON(out, results[0])
				}
				return printJSON(out, results)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Algorithm: fcfs, sjf, rr (overrides the file)")
	cmd.Flags().IntVarP(&quantum, "quantum", "q", 0, fmt.Sprintf("Round-Robin quantum (overrides the file; default %d)", defaultQuantum))
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json")
	cmd.Flags().IntVar(&width, "width", render.DefaultGanttWidth, "Gantt chart width in columns")
	cmd.Flags().StringVar(&format, "format", "", "Input format when reading stdin: yaml, json, csv")

	return cmd
}

// loadDocument parses path, or stdin when path is "-".
func loadDocument(cmd *cobra.Command, path string, format parser.Format) (*parser.Document, error) {
	p := parser.New(logger)
	if path != "-" {
		return p.ParseFile(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if format == "" {
		format = parser.FormatYAML
	}
	return p.Parse(data, format)
}

// policiesFor returns the document's policy, or one policy per algorithm
// when the document does not name one.
func policiesFor(doc *parser.Document) ([]model.Policy, error) {
	if doc.Algorithm != "" {
		p, err := doc.Policy("", defaultQuantum)
		if err != nil {
			return nil, err
		}
		return []model.Policy{p}, nil
	}

	var policies []model.Policy
	for _, a := range []model.Algorithm{model.AlgorithmFCFS, model.AlgorithmSJF, model.AlgorithmRoundRobin} {
		p, err := doc.Policy(a, defaultQuantum)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}
