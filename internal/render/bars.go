// Package render turns timelines and reports into human-readable output:
// Gantt bars, text charts, and metric tables.
package render

import (
	"github.com/me/cpusched/pkg/model"
)

// Palette is the set of bar colours, indexed by the numeric part of a pid.
var Palette = []string{"#3498db", "#2ecc71", "#e74c3c", "#f39c12", "#9b59b6"}

// Bar is one execution block laid out for a Gantt chart.
type Bar struct {
	PID          string  `json:"pid"`
	Label        string  `json:"label"`
	Start        int     `json:"start"`
	End          int     `json:"end"`
	WidthPercent float64 `json:"width_percent"`
	Color        string  `json:"color"`
}

// Bars lays out every block of tl with a width proportional to its share of
// the makespan.
func Bars(tl model.Timeline) []Bar {
	makespan := tl.Makespan()
	bars := make([]Bar, 0, len(tl))
	for _, b := range tl {
		bar := Bar{
			PID:   b.PID,
			Label: b.Label(),
			Start: b.Start,
			End:   b.End,
			Color: Color(b.PID),
		}
		if makespan > 0 {
			bar.WidthPercent = float64(b.Duration()) / float64(makespan) * 100
		}
		bars = append(bars, bar)
	}
	return bars
}

// Color picks a palette entry from the digits in pid, so "P1" and "P6" share
// a colour. Pids without digits get the first entry.
func Color(pid string) string {
	n := 0
	for _, r := range pid {
		if r >= '0' && r <= '9' {
			n = (n*10 + int(r-'0')) % len(Palette)
		}
	}
	return Palette[n]
}
