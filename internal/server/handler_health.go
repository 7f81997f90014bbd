package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/me/cpusched/pkg/model"
)

type healthResponse struct {
	Status         string            `json:"status"`
	Version        string            `json:"version"`
	GoVersion      string            `json:"go_version"`
	Uptime         string            `json:"uptime"`
	Store          string            `json:"store"`
	Algorithms     []model.Algorithm `json:"algorithms"`
	DefaultQuantum int               `json:"default_quantum"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	storeStatus := "unavailable"
	if s.store != nil {
		storeStatus = "sqlite"
	}

	respondOK(w, reqID, healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Store:     storeStatus,
		Algorithms: []model.Algorithm{
			model.AlgorithmFCFS,
			model.AlgorithmSJF,
			model.AlgorithmRoundRobin,
		},
		DefaultQuantum: s.config.DefaultQuantum,
	})
}
