package scheduler

import "github.com/me/cpusched/pkg/model"

// FCFS schedules processes first-come-first-served: strictly by arrival time,
// input order breaking ties, each process running to completion. The CPU idles
// until the next arrival when it would otherwise be free.
func FCFS(processes []model.Process) (model.Timeline, error) {
	if len(processes) == 0 {
		return nil, ErrEmptyProcessSet
	}

	timeline := make(model.Timeline, 0, len(processes))
	now := 0
	for _, i := range arrivalOrder(processes) {
		p := processes[i]
		start := max(now, p.ArrivalTime)
		end := start + p.BurstTime
		timeline = append(timeline, model.ExecutionBlock{PID: p.ID, Start: start, End: end})
		now = end
	}
	return timeline, nil
}
