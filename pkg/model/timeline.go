package model

import "fmt"

// ExecutionBlock is a contiguous, uninterrupted span of CPU time given to one process.
type ExecutionBlock struct {
	PID   string `json:"pid"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Duration returns End - Start.
func (b ExecutionBlock) Duration() int {
	return b.End - b.Start
}

// Label returns the block caption used by Gantt renderers, e.g. "P1 (0-5)".
func (b ExecutionBlock) Label() string {
	return fmt.Sprintf("%s (%d-%d)", b.PID, b.Start, b.End)
}

// Timeline is the chronological, non-overlapping sequence of blocks produced by
// one scheduling run.
type Timeline []ExecutionBlock

// Makespan returns the end of the last block, or 0 for an empty timeline.
func (t Timeline) Makespan() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End
}

// BusyTime returns the total time the CPU spent executing processes.
func (t Timeline) BusyTime() int {
	busy := 0
	for _, b := range t {
		busy += b.Duration()
	}
	return busy
}

// IdleTime returns the time between zero and the makespan with no block running.
func (t Timeline) IdleTime() int {
	return t.Makespan() - t.BusyTime()
}

// ForProcess returns the blocks of pid in chronological order.
func (t Timeline) ForProcess(pid string) []ExecutionBlock {
	var out []ExecutionBlock
	for _, b := range t {
		if b.PID == pid {
			out = append(out, b)
		}
	}
	return out
}
