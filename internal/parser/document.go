package parser

import (
	"fmt"

	"github.com/me/cpusched/pkg/model"
)

// Document is a parsed process-set file: the processes to schedule and,
// optionally, the policy to schedule them with.
type Document struct {
	Name      string          `json:"name,omitempty" yaml:"name,omitempty"`
	Algorithm string          `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Quantum   int             `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Processes []model.Process `json:"processes" yaml:"processes"`
}

// Policy resolves the document's scheduling policy. An empty algorithm falls
// back to fallback, and a zero quantum to defaultQuantum.
func (d *Document) Policy(fallback model.Algorithm, defaultQuantum int) (model.Policy, error) {
	algo := fallback
	if d.Algorithm != "" {
		a, err := model.ParseAlgorithm(d.Algorithm)
		if err != nil {
			return model.Policy{}, err
		}
		algo = a
	}
	if algo == "" {
		return model.Policy{}, fmt.Errorf("no scheduling algorithm given")
	}

	p := model.Policy{Algorithm: algo}
	if algo == model.AlgorithmRoundRobin {
		p.Quantum = d.Quantum
		if p.Quantum == 0 {
			p.Quantum = defaultQuantum
		}
	}
	return p, nil
}
