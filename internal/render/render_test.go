package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/me/cpusched/pkg/model"
)

func TestBars(t *testing.T) {
	tl := model.Timeline{
		{PID: "P1", Start: 0, End: 1},
		{PID: "P2", Start: 1, End: 4},
	}
	want := []Bar{
		{PID: "P1", Label: "P1 (0-1)", Start: 0, End: 1, WidthPercent: 25, Color: Palette[1]},
		{PID: "P2", Label: "P2 (1-4)", Start: 1, End: 4, WidthPercent: 75, Color: Palette[2]},
	}
	if diff := cmp.Diff(want, Bars(tl), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Bars mismatch (-want +got):\n%s", diff)
	}
}

func TestBars_Empty(t *testing.T) {
	if got := Bars(nil); len(got) != 0 {
		t.Errorf("Bars(nil) = %v, want empty", got)
	}
}

func TestColor(t *testing.T) {
	tests := map[string]string{
		"P1":   Palette[1],
		"P6":   Palette[1],
		"P5":   Palette[0],
		"P12":  Palette[2],
		"idle": Palette[0],
		"J4":   Palette[4],
	}
	for pid, want := range tests {
		if got := Color(pid); got != want {
			t.Errorf("Color(%q) = %q, want %q", pid, got, want)
		}
	}
}

func TestGantt(t *testing.T) {
	tl := model.Timeline{
		{PID: "A", Start: 0, End: 3},
		{PID: "B", Start: 5, End: 6},
	}
	var buf bytes.Buffer
	if err := Gantt(&buf, tl, 60); err != nil {
		t.Fatalf("Gantt: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), buf.String())
	}
	bar, axis := lines[0], lines[1]

	for _, want := range []string{"A (0-3)", "idle", "B (5-6)"} {
		if !strings.Contains(bar, want) {
			t.Errorf("bar %q missing %q", bar, want)
		}
	}
	if n := strings.Count(bar, "|"); n != 4 {
		t.Errorf("bar has %d separators, want 4", n)
	}

	if diff := cmp.Diff([]string{"0", "3", "5", "6"}, strings.Fields(axis)); diff != "" {
		t.Errorf("axis mismatch (-want +got):\n%s", diff)
	}
	// Every tick sits under a separator.
	for i, c := range axis {
		if c != ' ' && (i == 0 || axis[i-1] == ' ') && bar[i] != '|' {
			t.Errorf("tick at column %d not aligned with a separator", i)
		}
	}
}

func TestGantt_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Gantt(&buf, nil, 0); err != nil {
		t.Fatalf("Gantt: %v", err)
	}
	if !strings.Contains(buf.String(), "empty") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestGantt_NarrowLabelsGoToLegend(t *testing.T) {
	tl := model.Timeline{
		{PID: "LONGNAME", Start: 0, End: 1},
		{PID: "X", Start: 1, End: 100},
		{PID: "P1", Start: 100, End: 110},
	}
	var buf bytes.Buffer
	if err := Gantt(&buf, tl, 10); err != nil {
		t.Fatalf("Gantt: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want bar, axis and legend:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "|1|") {
		t.Errorf("bar = %q, want the short block as footnote 1", lines[0])
	}
	if !strings.Contains(lines[0], "X (1-100)") {
		t.Errorf("bar = %q, want the wide block labelled in place", lines[0])
	}
	if diff := cmp.Diff("[1] LONGNAME (0-1)  [2] P1 (100-110)", lines[2]); diff != "" {
		t.Errorf("legend mismatch (-want +got):\n%s", diff)
	}
}

func TestGantt_NoLegendWhenLabelsFit(t *testing.T) {
	var buf bytes.Buffer
	if err := Gantt(&buf, model.Timeline{{PID: "A", Start: 0, End: 2}}, 20); err != nil {
		t.Fatalf("Gantt: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("got %d lines, want 2:\n%s", n, buf.String())
	}
}

func testReport() *model.Report {
	rows := []model.Metric{
		{PID: "P1", TurnaroundTime: 4, WaitingTime: 0, ResponseTime: 0, CPUUsage: 100},
		{PID: "P2", TurnaroundTime: 6, WaitingTime: 3, ResponseTime: 3, CPUUsage: 50},
	}
	return &model.Report{
		PerProcess:     rows,
		Aggregate:      model.Metric{PID: model.AggregatePID, TurnaroundTime: 5, WaitingTime: 1.5, ResponseTime: 1.5, CPUUsage: 75},
		Makespan:       1234,
		IdleTime:       1,
		CPUUtilization: 50,
		Throughput:     0.5,
	}
}

func TestMetricsTable(t *testing.T) {
	var buf bytes.Buffer
	MetricsTable(&buf, testReport())
	out := buf.String()

	for _, want := range []string{"PID", "Turnaround", "CPU Usage", "P1", "P2", "100.00%", "50.00%", "Average", "1.50", "75.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestTimelineTable(t *testing.T) {
	var buf bytes.Buffer
	TimelineTable(&buf, model.Timeline{{PID: "P1", Start: 0, End: 2500}})
	if !strings.Contains(buf.String(), "2,500") {
		t.Errorf("table missing grouped duration:\n%s", buf.String())
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, testReport())
	out := buf.String()
	for _, want := range []string{"Makespan:         1,234 units", "Idle time:        1 unit\n", "CPU utilization:", "Throughput:"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestHeading(t *testing.T) {
	var buf bytes.Buffer
	Heading(&buf, "Round-Robin")
	want := "---------------\n  Round-Robin\n---------------\n"
	if buf.String() != want {
		t.Errorf("Heading = %q, want %q", buf.String(), want)
	}
}
