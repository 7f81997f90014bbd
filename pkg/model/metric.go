package model

// AggregatePID is the PID carried by the aggregate row of a Report.
const AggregatePID = "average"

// Metric holds the performance figures of one process, or the mean over all
// processes when PID is AggregatePID. CPUUsage is a percentage.
type Metric struct {
	PID            string  `json:"pid"`
	TurnaroundTime float64 `json:"turnaround_time"`
	WaitingTime    float64 `json:"waiting_time"`
	ResponseTime   float64 `json:"response_time"`
	CPUUsage       float64 `json:"cpu_usage"`
}

// Report is the metrics result of one simulation run.
type Report struct {
	PerProcess []Metric `json:"per_process"`
	Aggregate  Metric   `json:"aggregate"`

	// Whole-run figures.
	Makespan       int     `json:"makespan"`
	IdleTime       int     `json:"idle_time"`
	CPUUtilization float64 `json:"cpu_utilization"`
	Throughput     float64 `json:"throughput"`
}
