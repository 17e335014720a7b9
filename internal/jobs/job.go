// Package jobs implements the asynchronous analysis pipeline. A submission
// creates a job that a worker drives through an explicit state machine:
// pending → extracting → analyzing → completed, with failed reachable from
// either running state. States only move forward; callers poll read-only
// snapshots and may not cancel a running job.
package jobs

import (
	"time"

	"github.com/google/uuid"
)

// State identifies a job's position in its lifecycle.
type State string

const (
	StatePending    State = "pending"
	StateExtracting State = "extracting"
	StateAnalyzing  State = "analyzing"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Snapshot is a consistent read-only view of a job. ResultID is set only
// when the job completed; Error only when it failed.
type Snapshot struct {
	ID        uuid.UUID  `json:"id"`
	Filename  string     `json:"filename"`
	State     State      `json:"state"`
	Progress  int        `json:"progress"`
	Message   string     `json:"message"`
	ResultID  *uuid.UUID `json:"result_id,omitempty"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// SubmitCommand carries one analysis submission. Either Text holds pasted
// contract text, or Data holds raw document bytes to extract from; Filename
// identifies the upload and defaults to "Pasted Contract" for text.
type SubmitCommand struct {
	Text     string
	Data     []byte
	Filename string
}
