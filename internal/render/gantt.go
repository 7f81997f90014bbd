package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/me/cpusched/pkg/model"
)

// DefaultGanttWidth is the chart width used when Gantt is given width <= 0.
const DefaultGanttWidth = 72

const idleLabel = "idle"

type segment struct {
	label      string
	idle       bool
	start, end int
}

// segments returns the blocks of tl with the idle gaps between them made explicit.
func segments(tl model.Timeline) []segment {
	var segs []segment
	cursor := 0
	for _, b := range tl {
		if b.Start > cursor {
			segs = append(segs, segment{label: idleLabel, idle: true, start: cursor, end: b.Start})
		}
		segs = append(segs, segment{label: b.Label(), start: b.Start, end: b.End})
		cursor = b.End
	}
	return segs
}

// Gantt draws tl as a text chart: labelled cells sized by duration, then a time
// axis marking every block boundary. A block whose label does not fit its cell
// shows a footnote number instead, and a legend line after the axis maps each
// number to the full label.
func Gantt(w io.Writer, tl model.Timeline, width int) error {
	if len(tl) == 0 {
		_, err := fmt.Fprintln(w, "(empty timeline)")
		return err
	}
	if width <= 0 {
		width = DefaultGanttWidth
	}

	segs := segments(tl)
	makespan := tl.Makespan()

	var bar strings.Builder
	axis := make([]byte, 0, width+16)
	mark := func(col, t int) {
		s := strconv.Itoa(t)
		for len(axis) < col {
			axis = append(axis, ' ')
		}
		// Skip labels that would collide with the previous one.
		if len(axis) > col {
			return
		}
		axis = append(axis, s...)
	}

	var legend []string
	col := 0
	for _, s := range segs {
		cells := max(1, (s.end-s.start)*width/makespan)
		mark(col, s.start)
		bar.WriteByte('|')
		label := s.label
		if len(label) > cells && !s.idle {
			ref := strconv.Itoa(len(legend) + 1)
			legend = append(legend, "["+ref+"] "+s.label)
			label = ref
			if len(ref) > cells {
				label = strings.Repeat("*", cells)
			}
		}
		bar.WriteString(center(label, cells))
		col += cells + 1
	}
	bar.WriteByte('|')
	mark(col, makespan)

	if _, err := fmt.Fprintln(w, bar.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, string(axis)); err != nil {
		return err
	}
	if len(legend) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(legend, "  "))
	return err
}

// center pads or truncates s to exactly n bytes.
func center(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	pad := n - len(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
