package model

import "time"

// Simulation is a persisted scheduling run: the input set, the policy it was
// scheduled with, and the results.
type Simulation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Policy    Policy    `json:"policy"`
	Processes []Process `json:"processes"`
	Timeline  Timeline  `json:"timeline"`
	Report    *Report   `json:"report"`
	CreatedAt time.Time `json:"created_at"`
}

// SimulationSummary is the list view of a Simulation.
type SimulationSummary struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Policy             Policy    `json:"policy"`
	ProcessCount       int       `json:"process_count"`
	Makespan           int       `json:"makespan"`
	AverageWaitingTime float64   `json:"average_waiting_time"`
	CreatedAt          time.Time `json:"created_at"`
}

// Summary returns the list view of s.
func (s *Simulation) Summary() SimulationSummary {
	sum := SimulationSummary{
		ID:           s.ID,
		Name:         s.Name,
		Policy:       s.Policy,
		ProcessCount: len(s.Processes),
		Makespan:     s.Timeline.Makespan(),
		CreatedAt:    s.CreatedAt,
	}
	if s.Report != nil {
		sum.AverageWaitingTime = s.Report.Aggregate.WaitingTime
	}
	return sum
}
