package parser

import (
	"fmt"
	"log/slog"

	"github.com/me/cpusched/pkg/model"
)

// Validator performs semantic validation on a parsed Document.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a Validator with the given logger.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{logger: logger.With("component", "validator")}
}

// Validate checks a Document before scheduling.
// Returns nil if valid, or an *model.APIError with FieldError details.
func (v *Validator) Validate(doc *Document) *model.APIError {
	var errs []model.FieldError

	errs = append(errs, v.validatePolicy(doc)...)
	errs = append(errs, v.ValidateProcesses(doc.Processes)...)

	if len(errs) == 0 {
		return nil
	}
	v.logger.Debug("document rejected", "errors", len(errs))
	return model.NewValidationError("invalid process set", errs...)
}

// ValidateProcesses checks the per-process constraints: a non-empty set,
// unique non-empty ids, arrival >= 0, burst >= 1 and priority >= 1.
func (v *Validator) ValidateProcesses(ps []model.Process) []model.FieldError {
	if len(ps) == 0 {
		return []model.FieldError{{Field: "processes", Message: "at least one process is required"}}
	}

	var errs []model.FieldError
	seen := make(map[string]int, len(ps))
	for i, p := range ps {
		field := func(name string) string { return fmt.Sprintf("processes[%d].%s", i, name) }

		if p.ID == "" {
			errs = append(errs, model.FieldError{Field: field("id"), Message: "id is required"})
		} else if first, dup := seen[p.ID]; dup {
			errs = append(errs, model.FieldError{
				Field:   field("id"),
				Message: fmt.Sprintf("duplicate id %q (first used by processes[%d])", p.ID, first),
			})
		} else {
			seen[p.ID] = i
		}
		if p.ArrivalTime < 0 {
			errs = append(errs, model.FieldError{Field: field("arrival_time"), Message: "must be >= 0"})
		}
		if p.BurstTime < 1 {
			errs = append(errs, model.FieldError{Field: field("burst_time"), Message: "must be >= 1"})
		}
		if p.Priority < 1 {
			errs = append(errs, model.FieldError{Field: field("priority"), Message: "must be >= 1"})
		}
	}
	return errs
}

func (v *Validator) validatePolicy(doc *Document) []model.FieldError {
	var errs []model.FieldError
	if doc.Algorithm != "" {
		if _, err := model.ParseAlgorithm(doc.Algorithm); err != nil {
			errs = append(errs, model.FieldError{Field: "algorithm", Message: err.Error()})
		}
	}
	// Zero means "use the configured default".
	if doc.Quantum < 0 {
		errs = append(errs, model.FieldError{Field: "quantum", Message: "must be > 0"})
	}
	return errs
}
