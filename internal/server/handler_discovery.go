package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "cpusched API",
		Version:     "v1",
		Description: "CPU scheduling simulator: FCFS, SJF and Round-Robin timelines with per-process metrics",
		Endpoints: []endpointInfo{
			{"/api/v1/schedule", []string{"POST"}, "Schedule a process set without storing it"},
			{"/api/v1/simulations", []string{"GET", "POST"}, "List stored simulations (?limit, ?offset, ?algorithm) or run and store one"},
			{"/api/v1/simulations/{id}", []string{"GET", "DELETE"}, "Single simulation with timeline and report"},
			{"/api/v1/simulations/{id}/gantt", []string{"GET"}, "Text Gantt chart of a simulation (?width)"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
