// Package metrics derives per-process and aggregate performance figures from a
// scheduling Timeline.
package metrics

import (
	"fmt"

	"github.com/me/cpusched/pkg/model"
)

// MissingProcessError is returned when a process of the set never appears in
// the timeline it is measured against.
type MissingProcessError struct {
	PID string
}

func (e *MissingProcessError) Error() string {
	return fmt.Sprintf("process %q has no execution block in the timeline", e.PID)
}

// span is the first start and last end of one process in a timeline.
type span struct {
	firstStart int
	lastEnd    int
}

// Compute derives the metrics of every process in processes from timeline.
// Rows follow the input order of processes; the aggregate row is the
// arithmetic mean of each column.
func Compute(processes []model.Process, timeline model.Timeline) (*model.Report, error) {
	if len(processes) == 0 {
		return nil, model.ErrEmptyProcessSet
	}

	spans := make(map[string]*span, len(processes))
	for _, b := range timeline {
		s, ok := spans[b.PID]
		if !ok {
			spans[b.PID] = &span{firstStart: b.Start, lastEnd: b.End}
			continue
		}
		if b.Start < s.firstStart {
			s.firstStart = b.Start
		}
		if b.End > s.lastEnd {
			s.lastEnd = b.End
		}
	}

	report := &model.Report{
		PerProcess: make([]model.Metric, 0, len(processes)),
		Makespan:   timeline.Makespan(),
		IdleTime:   timeline.IdleTime(),
	}
	for _, p := range processes {
		s, ok := spans[p.ID]
		if !ok {
			return nil, &MissingProcessError{PID: p.ID}
		}
		report.PerProcess = append(report.PerProcess, processMetric(p, s))
	}
	report.Aggregate = Average(report.PerProcess)

	if report.Makespan > 0 {
		report.CPUUtilization = float64(timeline.BusyTime()) / float64(report.Makespan) * 100
		report.Throughput = float64(len(processes)) / float64(report.Makespan)
	}
	return report, nil
}

func processMetric(p model.Process, s *span) model.Metric {
	turnaround := s.lastEnd - p.ArrivalTime
	m := model.Metric{
		PID:            p.ID,
		TurnaroundTime: float64(turnaround),
		WaitingTime:    float64(turnaround - p.BurstTime),
		ResponseTime:   float64(s.firstStart - p.ArrivalTime),
	}
	// turnaround >= burst >= 1 for any timeline produced by the scheduler.
	if turnaround > 0 {
		m.CPUUsage = float64(p.BurstTime) / float64(turnaround) * 100
	}
	return m
}

// Average returns the column means of rows, labelled model.AggregatePID.
func Average(rows []model.Metric) model.Metric {
	avg := model.Metric{PID: model.AggregatePID}
	if len(rows) == 0 {
		return avg
	}
	for _, m := range rows {
		avg.TurnaroundTime += m.TurnaroundTime
		avg.WaitingTime += m.WaitingTime
		avg.ResponseTime += m.ResponseTime
		avg.CPUUsage += m.CPUUsage
	}
	n := float64(len(rows))
	avg.TurnaroundTime /= n
	avg.WaitingTime /= n
	avg.ResponseTime /= n
	avg.CPUUsage /= n
	return avg
}
