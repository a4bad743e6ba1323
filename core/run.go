package core

import "time"

// RunStatus is the lifecycle state of one pipeline iteration.
type RunStatus string

const (
	RunStatusPending RunStatus = "PENDING"
	RunStatusRunning RunStatus = "RUNNING"
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailure RunStatus = "FAILURE"
)

// RunDetail records the outcome of one pipeline iteration. It is created
// when the iteration starts, finalized exactly once when it ends, and never
// mutated afterwards. Run details form an append-only audit trail.
type RunDetail struct {
	ID                string            `json:"id" bson:"_id"`
	AgentID           string            `json:"agent_id" bson:"agent_id"`
	StartTime         time.Time         `json:"start_time" bson:"start_time"`
	EndTime           time.Time         `json:"end_time" bson:"end_time"` // zero while running
	RetrievedDataSize int               `json:"retrieved_data_size" bson:"retrieved_data_size"`
	Status            RunStatus         `json:"status" bson:"status"`
	Message           string            `json:"message" bson:"message"`
	Metadata          map[string]string `json:"metadata" bson:"metadata"`
}

// NewRunDetail opens a run record for the given agent with status RUNNING
// and the start time set to now.
func NewRunDetail(agentID string) *RunDetail {
	return &RunDetail{
		ID:        NewID(),
		AgentID:   agentID,
		StartTime: nowUTC(),
		Status:    RunStatusRunning,
		Metadata:  map[string]string{},
	}
}

// Finalize closes the run record. A nil error marks the run SUCCESS, any
// other error marks it FAILURE and records the message. Finalizing an
// already finalized run is a no-op.
func (r *RunDetail) Finalize(err error) {
	if r.Finalized() {
		return
	}
	r.EndTime = nowUTC()
	if err != nil {
		r.Status = RunStatusFailure
		r.Message = err.Error()
		return
	}
	r.Status = RunStatusSuccess
}

// Finalized reports whether the run record has been closed.
func (r *RunDetail) Finalized() bool {
	return !r.EndTime.IsZero()
}
