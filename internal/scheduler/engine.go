package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/me/cpusched/internal/metrics"
	"github.com/me/cpusched/pkg/model"
)

// Engine runs complete simulations: one algorithm followed by the metrics
// calculation. It holds no per-run state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an Engine logging through logger.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger.With("component", "scheduler")}
}

// Run schedules processes under p and computes the metrics of the resulting timeline.
func (e *Engine) Run(p model.Policy, processes []model.Process) (*model.ScheduleResult, error) {
	timeline, err := Schedule(p, processes)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", p, err)
	}

	report, err := metrics.Compute(processes, timeline)
	if err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}

	e.logger.Debug("simulation complete",
		"algorithm", p.Algorithm,
		"quantum", p.Quantum,
		"processes", len(processes),
		"blocks", len(timeline),
		"makespan", report.Makespan,
	)

	return &model.ScheduleResult{
		Policy:   p,
		Timeline: timeline,
		Report:   report,
	}, nil
}
