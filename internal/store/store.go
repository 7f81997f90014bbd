// Package store persists simulations.
package store

import (
	"context"
	"time"

	"github.com/me/cpusched/pkg/model"
)

// Store defines the persistence layer for simulations.
type Store interface {
	CreateSimulation(ctx context.Context, sim *model.Simulation) error
	// GetSimulation returns (nil, nil) when no simulation has the given id.
	GetSimulation(ctx context.Context, id string) (*model.Simulation, error)
	// ListSimulations returns one page of summaries, newest first, and the
	// total matching count.
	ListSimulations(ctx context.Context, opts model.ListOptions) ([]model.SimulationSummary, int, error)
	// DeleteSimulation reports whether a simulation was removed.
	DeleteSimulation(ctx context.Context, id string) (bool, error)
	// DeleteSimulationsBefore removes simulations created before cutoff and
	// returns how many were removed.
	DeleteSimulationsBefore(ctx context.Context, cutoff time.Time) (int, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
