package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds pagination metadata for list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ListOptions configures list queries with pagination and filtering.
type ListOptions struct {
	Limit     int
	Offset    int
	Algorithm Algorithm // Optional algorithm filter
}

// DefaultListOptions returns sensible defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// Clamp enforces limits (max 100, min 1).
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// ScheduleRequest is the body of the schedule and simulation endpoints.
type ScheduleRequest struct {
	Name      string           `json:"name,omitempty"`
	Algorithm string           `json:"algorithm"`
	Quantum   int              `json:"quantum,omitempty"`
	Processes []ProcessRequest `json:"processes"`
}

// ProcessRequest is a process as submitted over the API. An omitted priority
// becomes DefaultPriority; an explicit one is kept for validation.
type ProcessRequest struct {
	ID          string `json:"id"`
	ArrivalTime int    `json:"arrival_time"`
	BurstTime   int    `json:"burst_time"`
	Priority    *int   `json:"priority,omitempty"`
}

// Process converts r, applying DefaultPriority when the priority is omitted.
func (r ProcessRequest) Process() Process {
	p := Process{ID: r.ID, ArrivalTime: r.ArrivalTime, BurstTime: r.BurstTime, Priority: DefaultPriority}
	if r.Priority != nil {
		p.Priority = *r.Priority
	}
	return p
}

// ProcessSet returns the request's processes in submission order.
func (r ScheduleRequest) ProcessSet() []Process {
	if r.Processes == nil {
		return nil
	}
	out := make([]Process, len(r.Processes))
	for i, pr := range r.Processes {
		out[i] = pr.Process()
	}
	return out
}

// NewProcessRequests converts ps for submission.
func NewProcessRequests(ps []Process) []ProcessRequest {
	out := make([]ProcessRequest, len(ps))
	for i, p := range ps {
		prio := p.Priority
		out[i] = ProcessRequest{ID: p.ID, ArrivalTime: p.ArrivalTime, BurstTime: p.BurstTime, Priority: &prio}
	}
	return out
}

// ScheduleResult is the outcome of one scheduling run.
type ScheduleResult struct {
	Policy   Policy   `json:"policy"`
	Timeline Timeline `json:"timeline"`
	Report   *Report  `json:"report"`
}
