package scheduler

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/me/cpusched/pkg/model"
)

func TestRoundRobin(t *testing.T) {
	tests := []struct {
		name      string
		quantum   int
		processes []model.Process
		want      model.Timeline
	}{
		{
			name:      "preempted process resumes after arrival",
			quantum:   2,
			processes: []model.Process{proc("P1", 0, 4), proc("P2", 1, 2)},
			want:      model.Timeline{block("P1", 0, 2), block("P2", 2, 4), block("P1", 4, 6)},
		},
		{
			name:      "arrival at preemption instant is admitted first",
			quantum:   2,
			processes: []model.Process{proc("P1", 0, 4), proc("P2", 2, 2)},
			want:      model.Timeline{block("P1", 0, 2), block("P2", 2, 4), block("P1", 4, 6)},
		},
		{
			name:      "rotation with a mid-quantum arrival",
			quantum:   3,
			processes: []model.Process{proc("P1", 0, 5), proc("P2", 0, 3), proc("P3", 2, 4)},
			want: model.Timeline{
				block("P1", 0, 3), block("P2", 3, 6), block("P3", 6, 9),
				block("P1", 9, 11), block("P3", 11, 12),
			},
		},
		{
			name:      "idle gap and unmerged slices",
			quantum:   2,
			processes: []model.Process{proc("P1", 0, 1), proc("P2", 4, 3)},
			want:      model.Timeline{block("P1", 0, 1), block("P2", 4, 6), block("P2", 6, 7)},
		},
		{
			name:      "input not sorted by arrival",
			quantum:   1,
			processes: []model.Process{proc("B", 3, 2), proc("A", 0, 2)},
			want: model.Timeline{
				block("A", 0, 1), block("A", 1, 2), block("B", 3, 4), block("B", 4, 5),
			},
		},
		{
			name:      "quantum larger than every burst behaves like FCFS",
			quantum:   100,
			processes: []model.Process{proc("P1", 0, 5), proc("P2", 1, 3)},
			want:      model.Timeline{block("P1", 0, 5), block("P2", 5, 8)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoundRobin(tt.processes, tt.quantum)
			if err != nil {
				t.Fatalf("RoundRobin: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("timeline mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundRobin_InvalidQuantum(t *testing.T) {
	for _, q := range []int{0, -1} {
		_, err := RoundRobin([]model.Process{proc("P1", 0, 1)}, q)
		if !errors.Is(err, ErrInvalidQuantum) {
			t.Errorf("quantum %d: err = %v, want ErrInvalidQuantum", q, err)
		}
	}
}

// TestRoundRobin_BoundedSlice checks that no block exceeds the quantum and that
// only a process's final block may be shorter than it.
func TestRoundRobin_BoundedSlice(t *testing.T) {
	for _, q := range []int{1, 2, 3, 5} {
		for seed := int64(1); seed <= 10; seed++ {
			ps := randomSet(seed, 10)
			tl, err := RoundRobin(ps, q)
			if err != nil {
				t.Fatalf("RoundRobin: %v", err)
			}
			last := make(map[string]int)
			for i, b := range tl {
				last[b.PID] = i
			}
			for i, b := range tl {
				if b.Duration() > q {
					t.Errorf("q=%d seed %d: %+v exceeds quantum", q, seed, b)
				}
				if b.Duration() < q && last[b.PID] != i {
					t.Errorf("q=%d seed %d: short block %+v is not the last of %s", q, seed, b, b.PID)
				}
			}
		}
	}
}
