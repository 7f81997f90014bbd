package scheduler

import (
	"fmt"

	"github.com/me/cpusched/pkg/model"
)

// slot is the working copy of one process while Round-Robin runs.
type slot struct {
	index     int
	remaining int
}

// RoundRobin schedules processes in FIFO order granting at most quantum time
// units per turn. A process with work left after its turn re-enters the tail of
// the ready queue behind every process that arrived during that turn.
//
// Remaining burst time is tracked in an internal copy; processes is not modified.
func RoundRobin(processes []model.Process, quantum int) (model.Timeline, error) {
	if quantum <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantum, quantum)
	}
	if len(processes) == 0 {
		return nil, ErrEmptyProcessSet
	}

	arrivals := arrivalOrder(processes)
	next := 0
	var ready []slot
	now := 0

	admit := func() {
		for next < len(arrivals) && processes[arrivals[next]].ArrivalTime <= now {
			i := arrivals[next]
			ready = append(ready, slot{index: i, remaining: processes[i].BurstTime})
			next++
		}
	}

	var timeline model.Timeline
	for next < len(arrivals) || len(ready) > 0 {
		admit()
		if len(ready) == 0 {
			now = processes[arrivals[next]].ArrivalTime
			continue
		}

		cur := ready[0]
		ready = ready[1:]

		run := min(quantum, cur.remaining)
		timeline = append(timeline, model.ExecutionBlock{
			PID:   processes[cur.index].ID,
			Start: now,
			End:   now + run,
		})
		now += run
		cur.remaining -= run

		if cur.remaining > 0 {
			admit()
			ready = append(ready, cur)
		}
	}
	return timeline, nil
}
