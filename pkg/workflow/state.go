// Package workflow runs the analysis pipeline: a fixed DAG of nodes
// that acquires a filing, extracts its text, fans out to the aspect
// analyses concurrently, optionally compares against a prior period,
// and aggregates whatever succeeded.
package workflow

import "github.com/dtnitsch/edinet-research-agent/models"

// State is the accumulator for one analysis run. A run owns its state
// exclusively; nodes receive a value copy and return patches, so
// concurrent branches never write to it directly.
type State struct {
	DocID      string
	PriorDocID string

	Filing      *models.Filing
	PriorFiling *models.Filing

	FilePath      string
	PriorFilePath string

	Text      string
	PriorText string

	BusinessSummary   *models.BusinessSummary
	RiskAnalysis      *models.RiskAnalysis
	FinancialAnalysis *models.FinancialAnalysis
	PeriodComparison  *models.PeriodComparison

	Report *models.CompositeReport

	// Errors and CompletedNodes are append-only and deduplicated;
	// first-insertion order is preserved.
	Errors         []string
	CompletedNodes []string
}

// Patch is a node's contribution to the state. Concurrent branches
// write disjoint fields, so applying patches in completion order never
// loses data.
type Patch struct {
	FilePath      string
	PriorFilePath string
	Text          string
	PriorText     string

	BusinessSummary   *models.BusinessSummary
	RiskAnalysis      *models.RiskAnalysis
	FinancialAnalysis *models.FinancialAnalysis
	PeriodComparison  *models.PeriodComparison

	Report *models.CompositeReport

	Errors []string
}

// apply folds a patch into the state.
func (s *State) apply(p Patch) {
	if p.FilePath != "" {
		s.FilePath = p.FilePath
	}
	if p.PriorFilePath != "" {
		s.PriorFilePath = p.PriorFilePath
	}
	if p.Text != "" {
		s.Text = p.Text
	}
	if p.PriorText != "" {
		s.PriorText = p.PriorText
	}
	if p.BusinessSummary != nil {
		s.BusinessSummary = p.BusinessSummary
	}
	if p.RiskAnalysis != nil {
		s.RiskAnalysis = p.RiskAnalysis
	}
	if p.FinancialAnalysis != nil {
		s.FinancialAnalysis = p.FinancialAnalysis
	}
	if p.PeriodComparison != nil {
		s.PeriodComparison = p.PeriodComparison
	}
	if p.Report != nil {
		s.Report = p.Report
	}
	s.Errors = mergeList(s.Errors, p.Errors)
}

// mergeList appends items not already present, preserving the order of
// first insertion. The result never shrinks.
func mergeList(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		seen[item] = struct{}{}
	}
	for _, item := range incoming {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		existing = append(existing, item)
	}
	return existing
}
