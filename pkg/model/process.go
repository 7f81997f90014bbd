package model

// DefaultPriority is assigned to a process whose input omits its priority.
const DefaultPriority = 1

// Process is a CPU-bound job submitted to a simulation.
// Priority is carried through but not used by any of the supported algorithms.
type Process struct {
	ID          string `json:"id" yaml:"id"`
	ArrivalTime int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int    `json:"burst_time" yaml:"burst_time"`
	Priority    int    `json:"priority" yaml:"priority"`
}

// CloneProcesses returns a copy of ps that shares no backing array with it.
func CloneProcesses(ps []Process) []Process {
	if ps == nil {
		return nil
	}
	out := make([]Process, len(ps))
	copy(out, ps)
	return out
}
