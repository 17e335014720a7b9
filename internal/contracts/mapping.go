package contracts

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/clauseguard/clauseguard/pkg/query"
	"github.com/clauseguard/clauseguard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "contracts", "c").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("raw_text", "RawText").
	Project("summary", "Summary").
	Project("overall_risk_score", "OverallRiskScore").
	Project("overall_risk_level", "OverallRiskLevel").
	Project("analysis", "Analysis").
	Project("created_at", "CreatedAt")

var riskProjection = query.
	NewProjectionMap("public", "risks", "r").
	Project("id", "ID").
	Project("contract_id", "ContractID").
	Project("risk_id", "RiskID").
	Project("title", "Title").
	Project("severity", "Severity").
	Project("category", "Category").
	Project("clause", "Clause").
	Project("explanation", "Explanation").
	Project("recommendation", "Recommendation").
	Project("status", "Status").
	Project("user_note", "UserNote").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for contract queries.
// Nil fields are ignored. Filename uses case-insensitive contains matching;
// RiskLevel uses exact matching.
type Filters struct {
	Filename  *string `json:"filename,omitempty"`
	RiskLevel *string `json:"risk_level,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Filename", f.Filename).
		WhereEquals("OverallRiskLevel", f.RiskLevel)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if rl := values.Get("risk_level"); rl != "" {
		f.RiskLevel = &rl
	}

	return f
}

func scanContract(s repository.Scanner) (Contract, error) {
	var c Contract
	var analysisRaw []byte

	err := s.Scan(
		&c.ID,
		&c.Filename,
		&c.RawText,
		&c.Summary,
		&c.OverallRiskScore,
		&c.OverallRiskLevel,
		&analysisRaw,
		&c.CreatedAt,
	)

	if err != nil {
		return c, err
	}

	if len(analysisRaw) > 0 {
		if err := json.Unmarshal(analysisRaw, &c.Analysis); err != nil {
			return c, fmt.Errorf("unmarshal analysis: %w", err)
		}
	}

	return c, nil
}

func scanRisk(s repository.Scanner) (Risk, error) {
	var r Risk
	err := s.Scan(
		&r.ID,
		&r.ContractID,
		&r.RiskID,
		&r.Title,
		&r.Severity,
		&r.Category,
		&r.Clause,
		&r.Explanation,
		&r.Recommendation,
		&r.Status,
		&r.UserNote,
		&r.UpdatedAt,
	)
	return r, err
}
