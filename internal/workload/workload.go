// Package workload generates synthetic process sets from small JavaScript
// expressions evaluated with goja.
package workload

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/dop251/goja"
	"github.com/me/cpusched/pkg/model"
)

// evalTimeout bounds the total time spent evaluating one Generate call.
const evalTimeout = 2 * time.Second

// Spec describes a generated process set. Arrival, Burst and Priority are
// JavaScript expressions that see i (0-based index), n (Count) and
// rand(lo, hi), an inclusive integer draw from a generator seeded with Seed.
type Spec struct {
	Count    int    `json:"count" yaml:"count"`
	Prefix   string `json:"prefix" yaml:"prefix"`
	Arrival  string `json:"arrival" yaml:"arrival"`
	Burst    string `json:"burst" yaml:"burst"`
	Priority string `json:"priority" yaml:"priority"`
	Seed     int64  `json:"seed" yaml:"seed"`
}

// DefaultSpec returns a spec that yields a single process P1 arriving at 0
// with burst 1 and priority 1.
func DefaultSpec() Spec {
	return Spec{
		Count:    1,
		Prefix:   "P",
		Arrival:  "0",
		Burst:    "1",
		Priority: "1",
		Seed:     1,
	}
}

type field struct {
	name  string
	min   int
	prog  *goja.Program
	value *int
}

// Generate evaluates spec and returns the process set it describes. Values
// below the validity bounds (arrival 0, burst 1, priority 1) are clamped up.
// The same spec always produces the same set.
func Generate(spec Spec) ([]model.Process, error) {
	if spec.Count < 1 {
		return nil, fmt.Errorf("count must be >= 1, got %d", spec.Count)
	}
	def := DefaultSpec()
	if spec.Prefix == "" {
		spec.Prefix = def.Prefix
	}

	var proc model.Process
	fields := []*field{
		{name: "arrival", min: 0, value: &proc.ArrivalTime},
		{name: "burst", min: 1, value: &proc.BurstTime},
		{name: "priority", min: 1, value: &proc.Priority},
	}
	exprs := []string{spec.Arrival, spec.Burst, spec.Priority}
	fallbacks := []string{def.Arrival, def.Burst, def.Priority}
	for k, f := range fields {
		src := exprs[k]
		if src == "" {
			src = fallbacks[k]
		}
		prog, err := goja.Compile(f.name, src, true)
		if err != nil {
			return nil, fmt.Errorf("%s expression: %w", f.name, err)
		}
		f.prog = prog
	}

	vm, err := newVM(spec)
	if err != nil {
		return nil, err
	}
	timer := time.AfterFunc(evalTimeout, func() { vm.Interrupt("evaluation timed out") })
	defer timer.Stop()

	out := make([]model.Process, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		if err := vm.Set("i", i); err != nil {
			return nil, fmt.Errorf("set i: %w", err)
		}
		proc = model.Process{ID: spec.Prefix + strconv.Itoa(i+1)}
		for _, f := range fields {
			n, err := evalInt(vm, f.prog)
			if err != nil {
				return nil, fmt.Errorf("%s expression at i=%d: %w", f.name, i, err)
			}
			*f.value = max(n, f.min)
		}
		out = append(out, proc)
	}
	return out, nil
}

func newVM(spec Spec) (*goja.Runtime, error) {
	vm := goja.New()
	rng := rand.New(rand.NewSource(spec.Seed))

	if err := vm.Set("n", spec.Count); err != nil {
		return nil, fmt.Errorf("set n: %w", err)
	}
	err := vm.Set("rand", func(lo, hi int64) int64 {
		if hi < lo {
			lo, hi = hi, lo
		}
		// The span is computed in uint64 so bounds far apart cannot overflow.
		span := uint64(hi-lo) + 1
		if span == 0 {
			return int64(rng.Uint64())
		}
		return lo + int64(rng.Uint64()%span)
	})
	if err != nil {
		return nil, fmt.Errorf("set rand: %w", err)
	}
	return vm, nil
}

var errNotANumber = errors.New("result is not a finite number")

func evalInt(vm *goja.Runtime, prog *goja.Program) (int, error) {
	v, err := vm.RunProgram(prog)
	if err != nil {
		return 0, err
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return 0, errNotANumber
	}
	f := v.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotANumber
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("result %v is out of range", f)
	}
	return int(math.Floor(f)), nil
}
