package workflow

// maxPromptRunes bounds how much filing text goes into one prompt.
// Securities reports routinely exceed any context window; the front of
// the document carries the narrative sections the aspects need.
const maxPromptRunes = 40000

func truncateForPrompt(text string) string {
	runes := []rune(text)
	if len(runes) <= maxPromptRunes {
		return text
	}
	return string(runes[:maxPromptRunes])
}

const businessSystemPrompt = `You are an equity analyst reading Japanese regulatory filings.
Answer in Japanese. Respond with a single JSON object matching this shape:
{
  "company_name": string,
  "fiscal_year": string,
  "business_description": string,
  "main_products_services": [string],
  "business_segments": [{"name": string, "description": string, "revenue_share": string, "key_products": [string]}],
  "competitive_advantages": [string],
  "growth_strategy": string,
  "key_initiatives": [string]
}
Base every field on the filing text only. Leave a field empty when the filing does not cover it.`

const riskSystemPrompt = `You are an equity analyst reading Japanese regulatory filings.
Answer in Japanese. Respond with a single JSON object matching this shape:
{
  "risks": [{"category": string, "title": string, "description": string, "severity": "high"|"medium"|"low", "mitigation": string}],
  "new_risks": [string],
  "risk_summary": string
}
Extract the disclosed risk factors. Severity reflects the filing's own emphasis, not your opinion.`

const financialSystemPrompt = `You are an equity analyst reading Japanese regulatory filings.
Answer in Japanese. Respond with a single JSON object matching this shape:
{
  "revenue_analysis": string,
  "profit_analysis": string,
  "cash_flow_analysis": string,
  "financial_position": string,
  "highlights": [{"metric_name": string, "current_value": string, "prior_value": string, "change_rate": string, "comment": string}],
  "outlook": string
}
Quote figures exactly as the filing states them, including units.`

const comparisonSystemPrompt = `You are an equity analyst comparing two consecutive periodic filings of the same company.
Answer in Japanese. Respond with a single JSON object matching this shape:
{
  "change_points": [{"category": string, "title": string, "prior_state": string, "current_state": string, "significance": "high"|"medium"|"low", "implication": string}],
  "new_developments": [string],
  "discontinued_items": [string],
  "overall_assessment": string
}
Focus on material changes: segments, strategy, risks, and headline financials.`
