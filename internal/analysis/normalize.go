package analysis

import (
	"fmt"

	"github.com/clauseguard/clauseguard/pkg/formatting"
)

// rawResult mirrors Result with pointer fields so an absent top-level field
// is distinguishable from its zero value during repair.
type rawResult struct {
	OverallRiskScore   *int                `json:"overall_risk_score"`
	OverallRiskLevel   *string             `json:"overall_risk_level"`
	Summary            *string             `json:"summary"`
	PartyInfo          *PartyInfo          `json:"party_info"`
	Risks              *[]Risk             `json:"risks"`
	MissingProtections []MissingProtection `json:"missing_protections"`
	PositiveClauses    []PositiveClause    `json:"positive_clauses"`
	QuickStats         *QuickStats         `json:"quick_stats"`
}

// Normalize parses raw model output and repairs it into a schema-conformant
// Result. Parsing is strict: output that is not JSON (directly or inside a
// markdown code fence) fails with ErrInvalidResponse, and retrying the same
// raw text cannot succeed. Absent top-level fields are defaulted instead of
// failing; absent quick stats are derived from the risks list. The function
// is deterministic and side-effect free.
func Normalize(raw string) (*Result, error) {
	parsed, err := formatting.Parse[rawResult](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	result := &Result{
		Risks:              []Risk{},
		MissingProtections: []MissingProtection{},
		PositiveClauses:    []PositiveClause{},
		OverallRiskLevel:   RiskLevelUnknown,
	}

	if parsed.OverallRiskScore != nil {
		result.OverallRiskScore = *parsed.OverallRiskScore
	}
	if parsed.OverallRiskLevel != nil {
		result.OverallRiskLevel = *parsed.OverallRiskLevel
	}
	if parsed.Summary != nil {
		result.Summary = *parsed.Summary
	}
	if parsed.PartyInfo != nil {
		result.PartyInfo = *parsed.PartyInfo
	}
	if parsed.Risks != nil && *parsed.Risks != nil {
		result.Risks = *parsed.Risks
	}
	if parsed.MissingProtections != nil {
		result.MissingProtections = parsed.MissingProtections
	}
	if parsed.PositiveClauses != nil {
		result.PositiveClauses = parsed.PositiveClauses
	}

	if parsed.QuickStats != nil {
		result.QuickStats = *parsed.QuickStats
	} else {
		result.QuickStats = DeriveQuickStats(result.Risks)
	}

	return result, nil
}

// DeriveQuickStats counts risks grouped by severity. Severity matching is
// case-sensitive; unrecognized severities contribute to TotalRisks only.
func DeriveQuickStats(risks []Risk) QuickStats {
	stats := QuickStats{TotalRisks: len(risks)}

	for _, risk := range risks {
		switch risk.Severity {
		case SeverityCritical:
			stats.CriticalRisks++
		case SeverityHigh:
			stats.HighRisks++
		case SeverityMedium:
			stats.MediumRisks++
		case SeverityLow:
			stats.LowRisks++
		}
	}

	return stats
}
