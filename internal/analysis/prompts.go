package analysis

// SystemPrompt instructs the model to respond with JSON only.
const SystemPrompt = `You are an expert contract lawyer and risk analyst.
Analyze contracts and identify risks for the signing party.
Always respond with valid JSON only. No markdown, no explanation outside the JSON.`

const analysisPrompt = `Analyze the following contract and return a JSON object with this exact structure:

{
  "overall_risk_score": <number 1-100>,
  "overall_risk_level": "<Low|Medium|High|Critical>",
  "summary": "<2-3 sentence plain English summary>",
  "party_info": {
    "document_type": "<type of contract>",
    "key_parties": "<parties involved>"
  },
  "risks": [
    {
      "id": "<risk_1, risk_2 etc>",
      "title": "<short title>",
      "severity": "<Low|Medium|High|Critical>",
      "category": "<Liability|Payment|Termination|IP|Privacy|Non-compete|Indemnification|Other>",
      "clause": "<exact problematic clause, max 200 chars>",
      "explanation": "<plain English explanation>",
      "recommendation": "<what to do>"
    }
  ],
  "missing_protections": [
    {
      "title": "<missing clause>",
      "importance": "<Low|Medium|High>",
      "explanation": "<why needed>"
    }
  ],
  "positive_clauses": [
    {
      "title": "<favorable clause>",
      "explanation": "<why it benefits you>"
    }
  ],
  "quick_stats": {
    "total_risks": <number>,
    "critical_risks": <number>,
    "high_risks": <number>,
    "medium_risks": <number>,
    "low_risks": <number>
  }
}

Contract text:
`

// AnalysisPrompt embeds the contract text in the fixed schema prompt.
// Callers are responsible for truncating text to their request budget first.
func AnalysisPrompt(text string) string {
	return analysisPrompt + text
}
