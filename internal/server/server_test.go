package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/me/cpusched/internal/config"
	"github.com/me/cpusched/internal/render"
	"github.com/me/cpusched/internal/scheduler"
	"github.com/me/cpusched/internal/store"
	"github.com/me/cpusched/pkg/model"
)

func testServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(config.DefaultServerConfig(), st, logger, opts...)
}

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Timestamp  string            `json:"timestamp"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

func do(t *testing.T, srv *Server, method, path, body string, wantStatus int) envelope {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("%s %s: status=%d, want %d, body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v", method, path, err)
	}
	return env
}

func doGet(t *testing.T, srv *Server, path string) envelope {
	t.Helper()
	return do(t, srv, "GET", path, "", http.StatusOK)
}

const textbookBody = `{
	"name": "textbook",
	"algorithm": "rr",
	"quantum": 2,
	"processes": [
		{"id": "P1", "arrival_time": 0, "burst_time": 5, "priority": 1},
		{"id": "P2", "arrival_time": 1, "burst_time": 3, "priority": 1},
		{"id": "P3", "arrival_time": 2, "burst_time": 1, "priority": 1}
	]
}`

func TestDiscovery(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/")
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}
	if env.RequestID == "" {
		t.Error("request_id is empty")
	}

	var data struct {
		Name      string `json:"name"`
		Endpoints []struct {
			Path string `json:"path"`
		} `json:"endpoints"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Name != "cpusched API" {
		t.Errorf("name = %q, want cpusched API", data.Name)
	}
	if len(data.Endpoints) < 5 {
		t.Errorf("endpoints count = %d, want >= 5", len(data.Endpoints))
	}
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	env := doGet(t, srv, "/api/v1/health")

	var data struct {
		Status         string   `json:"status"`
		Version        string   `json:"version"`
		Algorithms     []string `json:"algorithms"`
		DefaultQuantum int      `json:"default_quantum"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Version != Version {
		t.Errorf("version = %q, want %s", data.Version, Version)
	}
	if len(data.Algorithms) != 3 {
		t.Errorf("algorithms = %v, want 3", data.Algorithms)
	}
	if data.DefaultQuantum != 2 {
		t.Errorf("default_quantum = %d, want 2", data.DefaultQuantum)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "client-abc")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "client-abc" {
		t.Errorf("X-Request-ID = %q, want client-abc", got)
	}

	req = httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "has spaces")
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); !strings.HasPrefix(got, "req_") {
		t.Errorf("X-Request-ID = %q, want a generated req_ id", got)
	}
}

func TestSchedule(t *testing.T) {
	srv := testServer(t)
	env := do(t, srv, "POST", "/api/v1/schedule", textbookBody, http.StatusOK)

	var data struct {
		Policy   model.Policy   `json:"policy"`
		Timeline model.Timeline `json:"timeline"`
		Report   model.Report   `json:"report"`
		Bars     []render.Bar   `json:"bars"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}

	if data.Policy != (model.Policy{Algorithm: model.AlgorithmRoundRobin, Quantum: 2}) {
		t.Errorf("policy = %+v", data.Policy)
	}
	want, err := scheduler.RoundRobin([]model.Process{
		{ID: "P1", ArrivalTime: 0, BurstTime: 5, Priority: 1},
		{ID: "P2", ArrivalTime: 1, BurstTime: 3, Priority: 1},
		{ID: "P3", ArrivalTime: 2, BurstTime: 1, Priority: 1},
	}, 2)
	if err != nil {
		t.Fatalf("RoundRobin: %v", err)
	}
	if diff := cmp.Diff(want, data.Timeline); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
	if len(data.Report.PerProcess) != 3 {
		t.Errorf("report rows = %d, want 3", len(data.Report.PerProcess))
	}
	if len(data.Bars) != len(data.Timeline) {
		t.Errorf("bars = %d, want one per block (%d)", len(data.Bars), len(data.Timeline))
	}
}

func TestSchedule_DefaultsQuantumAndAlgorithm(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		body string
		want model.Policy
	}{
		{`{"algorithm":"round-robin","processes":[{"id":"A","arrival_time":0,"burst_time":3,"priority":1}]}`,
			model.Policy{Algorithm: model.AlgorithmRoundRobin, Quantum: 2}},
		{`{"processes":[{"id":"A","arrival_time":0,"burst_time":3,"priority":1}]}`,
			model.Policy{Algorithm: model.AlgorithmFCFS}},
	}
	for _, tt := range tests {
		env := do(t, srv, "POST", "/api/v1/schedule", tt.body, http.StatusOK)
		var data struct {
			Policy model.Policy `json:"policy"`
		}
		json.Unmarshal(env.Data, &data)
		if data.Policy != tt.want {
			t.Errorf("policy = %+v, want %+v", data.Policy, tt.want)
		}
	}
}

func TestSchedule_MissingPriorityDefaults(t *testing.T) {
	srv := testServer(t)
	env := do(t, srv, "POST", "/api/v1/simulations/",
		`{"processes":[{"id":"P1","arrival_time":0,"burst_time":5}]}`, http.StatusCreated)

	var sim model.Simulation
	if err := json.Unmarshal(env.Data, &sim); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	want := []model.Process{{ID: "P1", ArrivalTime: 0, BurstTime: 5, Priority: model.DefaultPriority}}
	if diff := cmp.Diff(want, sim.Processes); diff != "" {
		t.Errorf("processes mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedule_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"invalid json", `not json`, ""},
		{"unknown field", `{"processes":[],"bogus":1}`, ""},
		{"empty set", `{"algorithm":"fcfs","processes":[]}`, "processes"},
		{"unknown algorithm", `{"algorithm":"edf","processes":[{"id":"A","arrival_time":0,"burst_time":1,"priority":1}]}`, "algorithm"},
		{"zero burst", `{"algorithm":"sjf","processes":[{"id":"A","arrival_time":0,"burst_time":0,"priority":1}]}`, "processes[0].burst_time"},
		{"negative quantum", `{"algorithm":"rr","quantum":-1,"processes":[{"id":"A","arrival_time":0,"burst_time":1,"priority":1}]}`, "quantum"},
		{"explicit zero priority", `{"processes":[{"id":"A","arrival_time":0,"burst_time":1,"priority":0}]}`, "processes[0].priority"},
	}

	srv := testServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := do(t, srv, "POST", "/api/v1/schedule", tt.body, http.StatusBadRequest)
			if env.Status != "error" {
				t.Errorf("status = %q, want error", env.Status)
			}
			if env.Error == nil || env.Error.Code != model.ErrValidation {
				t.Fatalf("error = %v, want VALIDATION_ERROR", env.Error)
			}
			if tt.wantField == "" {
				return
			}
			found := false
			for _, d := range env.Error.Details {
				if d.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("no detail for %q in %+v", tt.wantField, env.Error.Details)
			}
		})
	}
}

func TestSimulationLifecycle(t *testing.T) {
	srv := testServer(t)

	env := do(t, srv, "POST", "/api/v1/simulations/", textbookBody, http.StatusCreated)
	var created model.Simulation
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if !strings.HasPrefix(created.ID, "sim_") {
		t.Errorf("id = %q, want sim_ prefix", created.ID)
	}
	if created.Name != "textbook" {
		t.Errorf("name = %q, want textbook", created.Name)
	}

	env = doGet(t, srv, "/api/v1/simulations/"+created.ID)
	var got model.Simulation
	json.Unmarshal(env.Data, &got)
	if diff := cmp.Diff(created.Timeline, got.Timeline); diff != "" {
		t.Errorf("stored timeline mismatch (-want +got):\n%s", diff)
	}

	req := httptest.NewRequest("GET", "/api/v1/simulations/"+created.ID+"/gantt?width=40", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("gantt status = %d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if !strings.Contains(w.Body.String(), "P1 (0-2)") {
		t.Errorf("gantt missing first block:\n%s", w.Body.String())
	}

	do(t, srv, "DELETE", "/api/v1/simulations/"+created.ID, "", http.StatusOK)
	env = do(t, srv, "GET", "/api/v1/simulations/"+created.ID, "", http.StatusNotFound)
	if env.Error == nil || env.Error.Code != model.ErrNotFound {
		t.Errorf("error = %v, want NOT_FOUND", env.Error)
	}
	do(t, srv, "DELETE", "/api/v1/simulations/"+created.ID, "", http.StatusNotFound)
}

func TestListSimulations(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	srv := testServer(t, WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))

	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"name":"run-%d","algorithm":"sjf","processes":[{"id":"A","arrival_time":0,"burst_time":%d,"priority":1}]}`, i, i+1)
		do(t, srv, "POST", "/api/v1/simulations/", body, http.StatusCreated)
	}
	do(t, srv, "POST", "/api/v1/simulations/", textbookBody, http.StatusCreated)

	env := doGet(t, srv, "/api/v1/simulations/?limit=2")
	if env.Pagination == nil {
		t.Fatal("expected pagination")
	}
	if env.Pagination.Total != 4 || !env.Pagination.HasMore {
		t.Errorf("pagination = %+v, want total 4 with more", env.Pagination)
	}
	var page []model.SimulationSummary
	json.Unmarshal(env.Data, &page)
	if len(page) != 2 || page[0].Name != "textbook" || page[1].Name != "run-2" {
		t.Errorf("page = %+v, want textbook then run-2", page)
	}

	env = doGet(t, srv, "/api/v1/simulations/?algorithm=sjf&offset=2")
	json.Unmarshal(env.Data, &page)
	if env.Pagination.Total != 3 || env.Pagination.HasMore || len(page) != 1 || page[0].Name != "run-0" {
		t.Errorf("filtered page = %+v (pagination %+v), want only run-0", page, env.Pagination)
	}
	if page[0].ProcessCount != 1 || page[0].Makespan != 1 {
		t.Errorf("summary = %+v", page[0])
	}
}

func TestListSimulations_BadQuery(t *testing.T) {
	srv := testServer(t)
	env := do(t, srv, "GET", "/api/v1/simulations/?limit=abc&algorithm=edf", "", http.StatusBadRequest)
	if env.Error == nil || len(env.Error.Details) != 2 {
		t.Errorf("error = %+v, want two field errors", env.Error)
	}
}

func TestSimulationGantt_BadWidth(t *testing.T) {
	srv := testServer(t)
	do(t, srv, "GET", "/api/v1/simulations/sim_x/gantt?width=0", "", http.StatusBadRequest)
	do(t, srv, "GET", "/api/v1/simulations/sim_x/gantt", "", http.StatusNotFound)
}

func TestEngineError(t *testing.T) {
	tests := []struct {
		err       error
		wantCode  model.ErrorCode
		wantField string
	}{
		{fmt.Errorf("schedule: %w", scheduler.ErrEmptyProcessSet), model.ErrValidation, "processes"},
		{fmt.Errorf("schedule: %w", scheduler.ErrInvalidQuantum), model.ErrValidation, "quantum"},
		{scheduler.ErrUnknownAlgorithm, model.ErrValidation, "algorithm"},
		{fmt.Errorf("disk on fire"), model.ErrInternal, ""},
	}
	for _, tt := range tests {
		got := engineError(tt.err)
		if got.Code != tt.wantCode {
			t.Errorf("engineError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
		}
		if tt.wantField != "" && (len(got.Details) != 1 || got.Details[0].Field != tt.wantField) {
			t.Errorf("engineError(%v).Details = %+v, want field %q", tt.err, got.Details, tt.wantField)
		}
	}
}
