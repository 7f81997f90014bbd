package model

import (
	"fmt"
	"strings"
)

// Algorithm identifies a scheduling discipline.
type Algorithm string

const (
	AlgorithmFCFS       Algorithm = "fcfs"
	AlgorithmSJF        Algorithm = "sjf"
	AlgorithmRoundRobin Algorithm = "rr"
)

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// Title returns a human-readable name, e.g. "Round-Robin".
func (a Algorithm) Title() string {
	switch a {
	case AlgorithmFCFS:
		return "First-Come-First-Served"
	case AlgorithmSJF:
		return "Shortest-Job-First"
	case AlgorithmRoundRobin:
		return "Round-Robin"
	}
	return string(a)
}

// ParseAlgorithm converts a user-supplied name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo", "first-come-first-served":
		return AlgorithmFCFS, nil
	case "sjf", "shortest-job-first":
		return AlgorithmSJF, nil
	case "rr", "round-robin", "roundrobin":
		return AlgorithmRoundRobin, nil
	}
	return "", fmt.Errorf("unknown algorithm %q (want fcfs, sjf or rr)", s)
}

// Policy selects one algorithm. Quantum is only meaningful for AlgorithmRoundRobin.
type Policy struct {
	Algorithm Algorithm `json:"algorithm"`
	Quantum   int       `json:"quantum,omitempty"`
}

// String returns e.g. "rr(q=2)" or "sjf".
func (p Policy) String() string {
	if p.Algorithm == AlgorithmRoundRobin {
		return fmt.Sprintf("%s(q=%d)", p.Algorithm, p.Quantum)
	}
	return string(p.Algorithm)
}
