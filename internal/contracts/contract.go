// Package contracts implements the contract domain: durable storage for
// analyzed contracts and their risks, history queries, and risk review.
// The job orchestrator hands completed analyses here; user review of
// individual risks (status, note) happens here and never touches the
// analysis pipeline.
package contracts

import (
	"time"

	"github.com/google/uuid"

	"github.com/clauseguard/clauseguard/internal/analysis"
)

// Risk review statuses.
const (
	RiskStatusPending  = "pending"
	RiskStatusReviewed = "reviewed"
	RiskStatusAccepted = "accepted"
	RiskStatusDisputed = "disputed"
)

// Contract represents a stored, fully analyzed contract.
type Contract struct {
	ID               uuid.UUID       `json:"id"`
	Filename         string          `json:"filename"`
	RawText          string          `json:"raw_text"`
	Summary          string          `json:"summary"`
	OverallRiskScore int             `json:"overall_risk_score"`
	OverallRiskLevel string          `json:"overall_risk_level"`
	Analysis         analysis.Result `json:"analysis"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Risk is a stored contract risk with its user review state.
type Risk struct {
	ID             uuid.UUID `json:"id"`
	ContractID     uuid.UUID `json:"contract_id"`
	RiskID         string    `json:"risk_id"`
	Title          string    `json:"title"`
	Severity       string    `json:"severity"`
	Category       string    `json:"category"`
	Clause         string    `json:"clause"`
	Explanation    string    `json:"explanation"`
	Recommendation string    `json:"recommendation"`
	Status         string    `json:"status"`
	UserNote       string    `json:"user_note"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StoreCommand carries a completed analysis for storage.
type StoreCommand struct {
	Filename string
	RawText  string
	Result   *analysis.Result
}

// UpdateRiskCommand carries a user's review of a single risk.
// Nil fields are left unchanged.
type UpdateRiskCommand struct {
	Status   *string `json:"status"`
	UserNote *string `json:"note"`
}
