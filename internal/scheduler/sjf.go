package scheduler

import "github.com/me/cpusched/pkg/model"

// SJF schedules processes shortest-job-first without preemption. At every
// decision point the arrived process with the smallest burst time runs to
// completion; ties go to the earlier arrival, then to input order.
func SJF(processes []model.Process) (model.Timeline, error) {
	if len(processes) == 0 {
		return nil, ErrEmptyProcessSet
	}

	// pending stays sorted by (arrival, input order), so the first strict
	// minimum found is also the tie-break winner.
	pending := arrivalOrder(processes)
	timeline := make(model.Timeline, 0, len(processes))
	now := 0

	for len(pending) > 0 {
		pick := findShortestJob(processes, pending, now)
		if pick < 0 {
			// Nothing has arrived; skip straight to the next arrival.
			now = processes[pending[0]].ArrivalTime
			continue
		}

		p := processes[pending[pick]]
		timeline = append(timeline, model.ExecutionBlock{PID: p.ID, Start: now, End: now + p.BurstTime})
		now += p.BurstTime
		pending = append(pending[:pick], pending[pick+1:]...)
	}
	return timeline, nil
}

// findShortestJob returns the position in pending of the arrived process with
// the smallest burst time, or -1 when no pending process has arrived by now.
func findShortestJob(processes []model.Process, pending []int, now int) int {
	pick := -1
	for pos, i := range pending {
		p := processes[i]
		if p.ArrivalTime > now {
			break
		}
		if pick < 0 || p.BurstTime < processes[pending[pick]].BurstTime {
			pick = pos
		}
	}
	return pick
}
