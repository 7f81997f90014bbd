package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/me/cpusched/internal/scheduler"
	"github.com/me/cpusched/pkg/model"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil, nil)
}

// respondCreated writes a 201 response with the standard envelope.
func respondCreated(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusCreated, reqID, data, nil, nil)
}

// respondList writes a success response with pagination.
func respondList(w http.ResponseWriter, reqID string, data any, pg *model.Pagination) {
	respondJSON(w, http.StatusOK, reqID, data, pg, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	respondJSON(w, status, reqID, nil, nil, apiErr)
}

// respondAPIError picks the HTTP status from the error code.
func respondAPIError(w http.ResponseWriter, reqID string, apiErr *model.APIError) {
	status := http.StatusInternalServerError
	switch apiErr.Code {
	case model.ErrValidation:
		status = http.StatusBadRequest
	case model.ErrNotFound:
		status = http.StatusNotFound
	}
	respondError(w, reqID, status, apiErr)
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, pg *model.Pagination, apiErr *model.APIError) {
	resp := model.Response{
		RequestID:  reqID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pg,
		Error:      apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// engineError converts an error from the scheduling engine into an APIError.
func engineError(err error) *model.APIError {
	switch {
	case errors.Is(err, scheduler.ErrEmptyProcessSet):
		return model.NewValidationError("invalid process set",
			model.FieldError{Field: "processes", Message: err.Error()})
	case errors.Is(err, scheduler.ErrInvalidQuantum):
		return model.NewValidationError("invalid policy",
			model.FieldError{Field: "quantum", Message: err.Error()})
	case errors.Is(err, scheduler.ErrUnknownAlgorithm):
		return model.NewValidationError("invalid policy",
			model.FieldError{Field: "algorithm", Message: err.Error()})
	}
	return model.NewInternalError(err)
}
