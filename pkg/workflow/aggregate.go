package workflow

import (
	"context"

	"github.com/dtnitsch/edinet-research-agent/pkg/report"
)

// AggregateNode builds the composite report from whatever the run
// produced. It runs after every other node has settled and tolerates
// any subset of missing aspects; it fails only when there is nothing
// to report at all.
type AggregateNode struct{}

func (*AggregateNode) Name() string { return NodeAggregate }

func (n *AggregateNode) Execute(ctx context.Context, state State) (Patch, error) {
	rpt, err := report.Build(report.Input{
		DocID:               state.DocID,
		Text:                state.Text,
		BusinessSummary:     state.BusinessSummary,
		RiskAnalysis:        state.RiskAnalysis,
		FinancialAnalysis:   state.FinancialAnalysis,
		PeriodComparison:    state.PeriodComparison,
		ComparisonRequested: state.PriorDocID != "",
	})
	if err != nil {
		return Patch{}, err
	}
	return Patch{Report: rpt}, nil
}
