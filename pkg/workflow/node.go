package workflow

import "context"

// Node is one execution unit in the analysis graph. Execute receives a
// read-only snapshot of the state and returns a patch with the fields
// this node owns. Two nodes scheduled concurrently must patch disjoint
// fields.
type Node interface {
	Name() string
	Execute(ctx context.Context, state State) (Patch, error)
}

// Canonical node names. The graph wires dependencies by these.
const (
	NodeAcquire           = "acquire"
	NodeParse             = "parse"
	NodeBusinessSummary   = "business_summary"
	NodeRiskExtraction    = "risk_extraction"
	NodeFinancialAnalysis = "financial_analysis"
	NodeAcquirePrior      = "acquire_prior"
	NodeParsePrior        = "parse_prior"
	NodePeriodComparison  = "period_comparison"
	NodeAggregate         = "aggregate"
)
