package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/me/cpusched/internal/render"
	"github.com/me/cpusched/pkg/model"
)

// simulationResponse adds the Gantt layout to a stored Simulation.
type simulationResponse struct {
	*model.Simulation
	Bars []render.Bar `json:"bars"`
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	req, apiErr := decodeScheduleRequest(r)
	if apiErr != nil {
		respondAPIError(w, reqID, apiErr)
		return
	}

	result, apiErr := s.run(req)
	if apiErr != nil {
		respondAPIError(w, reqID, apiErr)
		return
	}

	name := req.Name
	if name == "" {
		name = "unnamed-simulation"
	}
	sim := &model.Simulation{
		ID:        "sim_" + uuid.New().String(),
		Name:      name,
		Policy:    result.Policy,
		Processes: req.ProcessSet(),
		Timeline:  result.Timeline,
		Report:    result.Report,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateSimulation(r.Context(), sim); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err))
		return
	}

	s.logger.Info("simulation created", "id", sim.ID, "policy", sim.Policy.String(), "processes", len(sim.Processes))

	respondCreated(w, reqID, simulationResponse{Simulation: sim, Bars: render.Bars(sim.Timeline)})
}

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	opts, apiErr := listOptions(r)
	if apiErr != nil {
		respondAPIError(w, reqID, apiErr)
		return
	}

	summaries, total, err := s.store.ListSimulations(r.Context(), opts)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err))
		return
	}
	if summaries == nil {
		summaries = []model.SimulationSummary{}
	}

	respondList(w, reqID, summaries, &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+len(summaries) < total,
	})
}

// listOptions parses ?limit, ?offset and ?algorithm.
func listOptions(r *http.Request) (model.ListOptions, *model.APIError) {
	opts := model.DefaultListOptions()
	q := r.URL.Query()

	var errs []model.FieldError
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "limit", Message: "must be an integer"})
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "offset", Message: "must be an integer"})
		}
		opts.Offset = n
	}
	if v := q.Get("algorithm"); v != "" {
		algo, err := model.ParseAlgorithm(v)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "algorithm", Message: err.Error()})
		}
		opts.Algorithm = algo
	}
	if len(errs) > 0 {
		return opts, model.NewValidationError("invalid query parameters", errs...)
	}

	opts.Clamp()
	return opts, nil
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	sim, ok := s.lookupSimulation(w, r)
	if !ok {
		return
	}
	respondOK(w, reqID, simulationResponse{Simulation: sim, Bars: render.Bars(sim.Timeline)})
}

func (s *Server) handleDeleteSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	deleted, err := s.store.DeleteSimulation(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err))
		return
	}
	if !deleted {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("simulation", id))
		return
	}

	s.logger.Info("simulation deleted", "id", id)
	respondOK(w, reqID, map[string]string{"id": id, "status": "deleted"})
}

func (s *Server) handleSimulationGantt(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	width := render.DefaultGanttWidth
	if v := r.URL.Query().Get("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, reqID, http.StatusBadRequest, model.NewValidationError("invalid query parameters",
				model.FieldError{Field: "width", Message: "must be a positive integer"}))
			return
		}
		width = n
	}

	sim, ok := s.lookupSimulation(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Gantt(&buf, sim.Timeline, width); err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// lookupSimulation loads the simulation named by the {id} URL parameter,
// writing an error response and returning false if that fails.
func (s *Server) lookupSimulation(w http.ResponseWriter, r *http.Request) (*model.Simulation, bool) {
	reqID := RequestIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	sim, err := s.store.GetSimulation(r.Context(), id)
	if err != nil {
		respondError(w, reqID, http.StatusInternalServerError, model.NewInternalError(err))
		return nil, false
	}
	if sim == nil {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("simulation", id))
		return nil, false
	}
	return sim, true
}
