package chat

import (
	"encoding/json"
	"fmt"

	"github.com/clauseguard/clauseguard/internal/contracts"
)

const (
	contextTextLimit  = 4000
	contextRisksLimit = 2000
)

const systemPromptTemplate = `You are ClauseGuard's AI legal assistant. You help users understand their contracts.

You have already analyzed this contract and here is the context:

CONTRACT SUMMARY: %s
RISK LEVEL: %s (%d/100)
DOCUMENT TYPE: %s

CONTRACT TEXT (first 4000 chars):
%s

IDENTIFIED RISKS:
%s

Answer the user's questions about this specific contract in plain English.
Be helpful, clear, and practical. If asked about legal advice, remind them to consult a lawyer.
Keep responses concise and focused.`

// BuildContext renders the grounding system prompt for a contract conversation.
// The contract text and rendered risks are truncated to fixed character budgets
// so the prompt stays bounded regardless of contract size.
func BuildContext(c *contracts.Contract) string {
	docType := c.Analysis.PartyInfo.DocumentType
	if docType == "" {
		docType = "Unknown"
	}

	risksJSON, err := json.MarshalIndent(c.Analysis.Risks, "", "  ")
	if err != nil {
		risksJSON = []byte("[]")
	}

	return fmt.Sprintf(systemPromptTemplate,
		c.Summary,
		c.OverallRiskLevel,
		c.OverallRiskScore,
		docType,
		truncate(c.RawText, contextTextLimit),
		truncate(string(risksJSON), contextRisksLimit),
	)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
