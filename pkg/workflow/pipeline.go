package workflow

import (
	"context"
	"log/slog"

	"github.com/dtnitsch/edinet-research-agent/models"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
	"github.com/dtnitsch/edinet-research-agent/pkg/extract"
	"github.com/dtnitsch/edinet-research-agent/pkg/llm"
	"github.com/dtnitsch/edinet-research-agent/pkg/registry"
)

// Deps are the collaborators the pipeline nodes need. All are resolved
// once by the composition root; no node does its own lookup.
type Deps struct {
	Registry  registry.Client
	Index     *cache.Index
	Extractor *extract.Extractor
	TextCache *extract.TextCache
	LLM       llm.Client
	Logger    *slog.Logger
}

// RunOptions parameterize one analysis run.
type RunOptions struct {
	DocID       string
	PriorDocID  string
	Filing      *models.Filing
	PriorFiling *models.Filing
	Strategy    extract.StrategyName
	StartPage   int
	EndPage     int
}

// Run executes the full analysis pipeline for one filing:
//
//	acquire -> parse -> {business_summary, risk_extraction, financial_analysis} -> aggregate
//
// with a prior-period branch (acquire_prior -> parse_prior ->
// period_comparison) grafted in when a prior filing id is given.
func Run(ctx context.Context, deps Deps, opts RunOptions) (State, error) {
	entries := []Entry{
		{Node: &AcquireNode{Registry: deps.Registry, Index: deps.Index, Logger: deps.Logger}},
		{
			Node: &ParseNode{
				Extractor: deps.Extractor, TextCache: deps.TextCache,
				Strategy: opts.Strategy, StartPage: opts.StartPage, EndPage: opts.EndPage,
				Logger: deps.Logger,
			},
			Requires: []string{NodeAcquire},
		},
		{Node: &BusinessSummaryNode{LLM: deps.LLM}, Requires: []string{NodeParse}},
		{Node: &RiskExtractionNode{LLM: deps.LLM}, Requires: []string{NodeParse}},
		{Node: &FinancialAnalysisNode{LLM: deps.LLM}, Requires: []string{NodeParse}},
	}

	aggregateWaits := []string{
		NodeParse, NodeBusinessSummary, NodeRiskExtraction, NodeFinancialAnalysis,
	}

	if opts.PriorDocID != "" {
		entries = append(entries,
			Entry{Node: &AcquireNode{Registry: deps.Registry, Index: deps.Index, Logger: deps.Logger, Prior: true}},
			Entry{
				Node: &ParseNode{
					Extractor: deps.Extractor, TextCache: deps.TextCache,
					Strategy: opts.Strategy, StartPage: opts.StartPage, EndPage: opts.EndPage,
					Logger: deps.Logger, Prior: true,
				},
				Requires: []string{NodeAcquirePrior},
			},
			Entry{
				Node:     &PeriodComparisonNode{LLM: deps.LLM},
				WaitFor:  []string{NodeBusinessSummary, NodeRiskExtraction, NodeFinancialAnalysis},
				Requires: []string{NodeParse, NodeParsePrior},
			},
		)
		aggregateWaits = append(aggregateWaits, NodePeriodComparison)
	}

	// Aggregate waits for everything but requires nothing: it reports
	// whatever subset succeeded.
	entries = append(entries, Entry{Node: &AggregateNode{}, WaitFor: aggregateWaits})

	graph, err := NewGraph(entries, deps.Logger)
	if err != nil {
		return State{}, err
	}

	initial := State{
		DocID:       opts.DocID,
		PriorDocID:  opts.PriorDocID,
		Filing:      opts.Filing,
		PriorFiling: opts.PriorFiling,
	}
	return graph.Run(ctx, initial)
}
