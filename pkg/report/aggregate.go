// Package report folds the per-aspect analysis results into one
// composite report with explicit per-aspect status.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/edinet-research-agent/models"
)

const topKeywordCount = 15

// Input is everything the aggregator may draw on. Any aspect pointer
// may be nil; ComparisonRequested distinguishes a comparison that was
// never asked for from one that was attempted and failed.
type Input struct {
	DocID string
	Text  string

	BusinessSummary     *models.BusinessSummary
	RiskAnalysis        *models.RiskAnalysis
	FinancialAnalysis   *models.FinancialAnalysis
	PeriodComparison    *models.PeriodComparison
	ComparisonRequested bool
}

// Build assembles the composite report from whatever succeeded. It
// fails only when there is nothing at all to report: no extracted text
// and no aspect result.
func Build(input Input) (*models.CompositeReport, error) {
	if strings.TrimSpace(input.Text) == "" &&
		input.BusinessSummary == nil && input.RiskAnalysis == nil &&
		input.FinancialAnalysis == nil && input.PeriodComparison == nil {
		return nil, fmt.Errorf("no usable content for %s: parsing yielded no text and no aspect succeeded", input.DocID)
	}

	rpt := &models.CompositeReport{
		DocID:             input.DocID,
		BusinessSummary:   input.BusinessSummary,
		RiskAnalysis:      input.RiskAnalysis,
		FinancialAnalysis: input.FinancialAnalysis,
		PeriodComparison:  input.PeriodComparison,
		AspectStatuses: models.AspectStatuses{
			BusinessSummary:   statusOf(input.BusinessSummary != nil, true),
			RiskAnalysis:      statusOf(input.RiskAnalysis != nil, true),
			FinancialAnalysis: statusOf(input.FinancialAnalysis != nil, true),
			PeriodComparison:  statusOf(input.PeriodComparison != nil, input.ComparisonRequested),
		},
		GeneratedAt: time.Now().UTC(),
	}

	rpt.ExecutiveSummary = executiveSummary(input)
	rpt.InvestmentHighlights = investmentHighlights(input)
	rpt.Concerns = concerns(input)
	if input.Text != "" {
		rpt.TopKeywords = TopKeywords(input.Text, topKeywordCount)
	}

	return rpt, nil
}

func statusOf(present, requested bool) models.AspectStatus {
	switch {
	case present:
		return models.AspectPresent
	case requested:
		return models.AspectFailed
	default:
		return models.AspectNotRequested
	}
}

// executiveSummary stitches the lead sentence of each available aspect
// into a short narrative.
func executiveSummary(input Input) string {
	var parts []string

	if bs := input.BusinessSummary; bs != nil {
		if bs.CompanyName != "" && bs.BusinessDescription != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", bs.CompanyName, firstSentence(bs.BusinessDescription)))
		} else if bs.BusinessDescription != "" {
			parts = append(parts, firstSentence(bs.BusinessDescription))
		}
		if bs.GrowthStrategy != "" {
			parts = append(parts, "成長戦略: "+firstSentence(bs.GrowthStrategy))
		}
	}
	if fin := input.FinancialAnalysis; fin != nil {
		if fin.RevenueAnalysis != "" {
			parts = append(parts, firstSentence(fin.RevenueAnalysis))
		}
		if fin.Outlook != "" {
			parts = append(parts, "見通し: "+firstSentence(fin.Outlook))
		}
	}
	if risks := input.RiskAnalysis; risks != nil && risks.RiskSummary != "" {
		parts = append(parts, "リスク: "+firstSentence(risks.RiskSummary))
	}
	if cmp := input.PeriodComparison; cmp != nil && cmp.OverallAssessment != "" {
		parts = append(parts, "前期比較: "+firstSentence(cmp.OverallAssessment))
	}

	if len(parts) == 0 {
		return "構造化された分析結果は得られませんでした。抽出テキストのみ利用可能です。"
	}
	return strings.Join(parts, " ")
}

func investmentHighlights(input Input) []string {
	var highlights []string
	if bs := input.BusinessSummary; bs != nil {
		highlights = append(highlights, bs.CompetitiveAdvantages...)
	}
	if fin := input.FinancialAnalysis; fin != nil {
		for _, h := range fin.Highlights {
			if h.Comment != "" {
				highlights = append(highlights, fmt.Sprintf("%s: %s", h.MetricName, h.Comment))
			}
		}
	}
	if cmp := input.PeriodComparison; cmp != nil {
		highlights = append(highlights, cmp.NewDevelopments...)
	}
	return highlights
}

func concerns(input Input) []string {
	var concerns []string
	if risks := input.RiskAnalysis; risks != nil {
		for _, r := range risks.Risks {
			if r.Severity == "high" {
				concerns = append(concerns, fmt.Sprintf("%s: %s", r.Category, r.Title))
			}
		}
		concerns = append(concerns, risks.NewRisks...)
	}
	if cmp := input.PeriodComparison; cmp != nil {
		for _, c := range cmp.ChangePoints {
			if c.Significance == "high" {
				concerns = append(concerns, fmt.Sprintf("%s: %s", c.Title, c.Implication))
			}
		}
	}
	return concerns
}

// firstSentence cuts at the first sentence boundary, Japanese or
// English, falling back to the whole string.
func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r == '。' {
			return s[:i+len("。")]
		}
		if r == '.' && i+1 < len(s) && (s[i+1] == ' ' || s[i+1] == '\n') {
			return s[:i+1]
		}
	}
	return s
}
