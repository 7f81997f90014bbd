package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/me/cpusched/pkg/model"
	"github.com/olekukonko/tablewriter"
)

// Heading writes title framed by dashed rules.
func Heading(w io.Writer, title string) {
	rule := strings.Repeat("-", len(title)+4)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, rule)
}

// MetricsTable writes one row per process and an Average footer.
func MetricsTable(w io.Writer, report *model.Report) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"PID", "Turnaround", "Waiting", "Response", "CPU Usage"})
	for _, m := range report.PerProcess {
		table.Append(metricRow(m.PID, m))
	}
	table.SetFooter(metricRow("Average", report.Aggregate))
	table.Render()
}

func metricRow(label string, m model.Metric) []string {
	return []string{
		label,
		fmt.Sprintf("%.2f", m.TurnaroundTime),
		fmt.Sprintf("%.2f", m.WaitingTime),
		fmt.Sprintf("%.2f", m.ResponseTime),
		fmt.Sprintf("%.2f%%", m.CPUUsage),
	}
}

// TimelineTable lists every execution block in order.
func TimelineTable(w io.Writer, tl model.Timeline) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"PID", "Start", "End", "Duration"})
	for _, b := range tl {
		table.Append([]string{
			b.PID,
			humanize.Comma(int64(b.Start)),
			humanize.Comma(int64(b.End)),
			humanize.Comma(int64(b.Duration())),
		})
	}
	table.Render()
}

// Summary writes the whole-run figures of report.
func Summary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "Makespan:         %s\n", units(report.Makespan))
	fmt.Fprintf(w, "Idle time:        %s\n", units(report.IdleTime))
	fmt.Fprintf(w, "CPU utilization:  %s%%\n", humanize.FormatFloat("#,###.##", report.CPUUtilization))
	fmt.Fprintf(w, "Throughput:       %s processes/unit\n", humanize.FormatFloat("#,###.####", report.Throughput))
}

func units(n int) string {
	if n == 1 {
		return "1 unit"
	}
	return humanize.Comma(int64(n)) + " units"
}
