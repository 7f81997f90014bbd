package scheduler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/me/cpusched/pkg/model"
)

func TestFCFS(t *testing.T) {
	tests := []struct {
		name      string
		processes []model.Process
		want      model.Timeline
	}{
		{
			name:      "two processes back to back",
			processes: []model.Process{proc("P1", 0, 5), proc("P2", 1, 3)},
			want:      model.Timeline{block("P1", 0, 5), block("P2", 5, 8)},
		},
		{
			name:      "waits for first arrival",
			processes: []model.Process{proc("P1", 3, 2)},
			want:      model.Timeline{block("P1", 3, 5)},
		},
		{
			name:      "idle gap between processes",
			processes: []model.Process{proc("P1", 0, 2), proc("P2", 5, 1)},
			want:      model.Timeline{block("P1", 0, 2), block("P2", 5, 6)},
		},
		{
			name:      "sorted by arrival, input order on ties",
			processes: []model.Process{proc("A", 2, 1), proc("B", 0, 2), proc("C", 2, 3)},
			want:      model.Timeline{block("B", 0, 2), block("A", 2, 3), block("C", 3, 6)},
		},
		{
			name:      "burst length does not reorder",
			processes: []model.Process{proc("long", 0, 10), proc("short", 1, 1)},
			want:      model.Timeline{block("long", 0, 10), block("short", 10, 11)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FCFS(tt.processes)
			if err != nil {
				t.Fatalf("FCFS: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("timeline mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFCFS_ArrivalOrder(t *testing.T) {
	ps := randomSet(3, 20)
	tl, err := FCFS(ps)
	if err != nil {
		t.Fatalf("FCFS: %v", err)
	}
	if len(tl) != len(ps) {
		t.Fatalf("len = %d, want one block per process (%d)", len(tl), len(ps))
	}
	arrival := make(map[string]int)
	for _, p := range ps {
		arrival[p.ID] = p.ArrivalTime
	}
	for i := 1; i < len(tl); i++ {
		if arrival[tl[i-1].PID] > arrival[tl[i].PID] {
			t.Errorf("%s (arrival %d) ran before %s (arrival %d)",
				tl[i-1].PID, arrival[tl[i-1].PID], tl[i].PID, arrival[tl[i].PID])
		}
	}
}
