package server

import (
	"encoding/json"
	"net/http"

	"github.com/me/cpusched/internal/parser"
	"github.com/me/cpusched/internal/render"
	"github.com/me/cpusched/pkg/model"
)

// scheduleResponse adds the Gantt layout to a ScheduleResult.
type scheduleResponse struct {
	*model.ScheduleResult
	Bars []render.Bar `json:"bars"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
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

	respondOK(w, reqID, scheduleResponse{
		ScheduleResult: result,
		Bars:           render.Bars(result.Timeline),
	})
}

func decodeScheduleRequest(r *http.Request) (model.ScheduleRequest, *model.APIError) {
	var req model.ScheduleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		}
	}
	return req, nil
}

// run validates req, resolves its policy against the server defaults, and
// runs the engine.
func (s *Server) run(req model.ScheduleRequest) (*model.ScheduleResult, *model.APIError) {
	doc := &parser.Document{
		Name:      req.Name,
		Algorithm: req.Algorithm,
		Quantum:   req.Quantum,
		Processes: req.ProcessSet(),
	}
	if apiErr := s.validator.Validate(doc); apiErr != nil {
		return nil, apiErr
	}

	policy, err := doc.Policy(model.AlgorithmFCFS, s.config.DefaultQuantum)
	if err != nil {
		return nil, model.NewValidationError("invalid policy",
			model.FieldError{Field: "algorithm", Message: err.Error()})
	}

	result, err := s.engine.Run(policy, doc.Processes)
	if err != nil {
		return nil, engineError(err)
	}
	return result, nil
}
