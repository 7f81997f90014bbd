// Package scheduler implements the FCFS, SJF and Round-Robin scheduling
// disciplines over a closed, fully-known process set.
//
// Every algorithm is a pure function: it runs synchronously to completion,
// never mutates the caller's slice, and returns the same Timeline for the
// same input.
package scheduler

import (
	"errors"
	"fmt"
	"sort"

	"github.com/me/cpusched/pkg/model"
)

var (
	// ErrEmptyProcessSet is returned when there is nothing to schedule.
	ErrEmptyProcessSet = model.ErrEmptyProcessSet
	// ErrInvalidQuantum is returned for a Round-Robin quantum <= 0.
	ErrInvalidQuantum = errors.New("round-robin quantum must be > 0")
	// ErrUnknownAlgorithm is returned for a policy naming no supported algorithm.
	ErrUnknownAlgorithm = errors.New("unknown scheduling algorithm")
)

// Scheduler turns a process set into a Timeline under one fixed policy.
type Scheduler interface {
	// Policy returns the policy this scheduler applies.
	Policy() model.Policy

	// Schedule runs the simulation once over processes.
	Schedule(processes []model.Process) (model.Timeline, error)
}

// New returns the Scheduler for p.
func New(p model.Policy) (Scheduler, error) {
	if err := ValidatePolicy(p); err != nil {
		return nil, err
	}
	return policyScheduler{policy: p}, nil
}

// Schedule validates p and runs the matching algorithm over processes.
func Schedule(p model.Policy, processes []model.Process) (model.Timeline, error) {
	s, err := New(p)
	if err != nil {
		return nil, err
	}
	return s.Schedule(processes)
}

// ValidatePolicy rejects unknown algorithms and non-positive Round-Robin quanta.
func ValidatePolicy(p model.Policy) error {
	switch p.Algorithm {
	case model.AlgorithmFCFS, model.AlgorithmSJF:
		return nil
	case model.AlgorithmRoundRobin:
		if p.Quantum <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidQuantum, p.Quantum)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, p.Algorithm)
}

type policyScheduler struct {
	policy model.Policy
}

func (s policyScheduler) Policy() model.Policy { return s.policy }

func (s policyScheduler) Schedule(processes []model.Process) (model.Timeline, error) {
	switch s.policy.Algorithm {
	case model.AlgorithmFCFS:
		return FCFS(processes)
	case model.AlgorithmSJF:
		return SJF(processes)
	case model.AlgorithmRoundRobin:
		return RoundRobin(processes, s.policy.Quantum)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s.policy.Algorithm)
}

// arrivalOrder returns the indices of processes sorted by arrival time.
// Equal arrivals keep input order.
func arrivalOrder(processes []model.Process) []int {
	order := make([]int, len(processes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return processes[order[a]].ArrivalTime < processes[order[b]].ArrivalTime
	})
	return order
}
