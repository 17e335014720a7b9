// Package analysis defines the contract risk-analysis schema, the remote
// model client, and the normalizer that repairs semi-trusted model output
// into a guaranteed Result.
package analysis

// Severity levels recognized by the analysis schema. Matching is
// case-sensitive; anything else is preserved but never bucketed.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// RiskLevelUnknown substitutes for an overall risk level the model omitted.
const RiskLevelUnknown = "Unknown"

// Result is the schema-conformant output of a contract analysis.
type Result struct {
	OverallRiskScore   int                 `json:"overall_risk_score"`
	OverallRiskLevel   string              `json:"overall_risk_level"`
	Summary            string              `json:"summary"`
	PartyInfo          PartyInfo           `json:"party_info"`
	Risks              []Risk              `json:"risks"`
	MissingProtections []MissingProtection `json:"missing_protections"`
	PositiveClauses    []PositiveClause    `json:"positive_clauses"`
	QuickStats         QuickStats          `json:"quick_stats"`
}

// Risk is a single identified contract risk.
type Risk struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Severity       string `json:"severity"`
	Category       string `json:"category"`
	Clause         string `json:"clause"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

// MissingProtection describes a protective clause the contract lacks.
type MissingProtection struct {
	Title       string `json:"title"`
	Importance  string `json:"importance"`
	Explanation string `json:"explanation"`
}

// PositiveClause describes a clause favorable to the signing party.
type PositiveClause struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// QuickStats holds per-severity risk counts. TotalRisks always equals the
// length of Result.Risks after normalization; severities outside the four
// known levels count toward the total but no bucket.
type QuickStats struct {
	TotalRisks    int `json:"total_risks"`
	CriticalRisks int `json:"critical_risks"`
	HighRisks     int `json:"high_risks"`
	MediumRisks   int `json:"medium_risks"`
	LowRisks      int `json:"low_risks"`
}

// PartyInfo identifies the document type and the parties involved.
type PartyInfo struct {
	DocumentType string `json:"document_type"`
	KeyParties   string `json:"key_parties"`
}
