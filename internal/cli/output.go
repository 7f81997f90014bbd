package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/me/cpusched/internal/render"
	"github.com/me/cpusched/pkg/model"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table or json)", format)
}

// printResult writes one scheduling run as a heading, Gantt chart, metrics
// table and summary.
func printResult(w io.Writer, result *model.ScheduleResult, width int) error {
	title := result.Policy.Algorithm.Title()
	if result.Policy.Algorithm == model.AlgorithmRoundRobin {
		title = fmt.Sprintf("%s (quantum %d)", title, result.Policy.Quantum)
	}
	render.Heading(w, title)

	fmt.Fprintln(w, "Gantt chart")
	if err := render.Gantt(w, result.Timeline, width); err != nil {
		return err
	}
	fmt.Fprintln(w)

	render.MetricsTable(w, result.Report)
	render.Summary(w, result.Report)
	fmt.Fprintln(w)
	return nil
}

// jsonResult is the JSON form of a run, with the bar layout included.
type jsonResult struct {
	*model.ScheduleResult
	Bars []render.Bar `json:"bars"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
