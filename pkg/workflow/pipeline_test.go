package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/edinet-research-agent/models"
	"github.com/dtnitsch/edinet-research-agent/pkg/cache"
	"github.com/dtnitsch/edinet-research-agent/pkg/extract"
	"github.com/dtnitsch/edinet-research-agent/pkg/registry"
)

// stubRegistryClient serves a fixed PDF payload for any filing id.
type stubRegistryClient struct{}

func (stubRegistryClient) List(context.Context, time.Time) ([]models.Filing, error) {
	return nil, nil
}

func (stubRegistryClient) Fetch(context.Context, string, registry.FetchKind) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// stubStrategy sidesteps real PDF parsing; the pipeline only needs text
// that passes the quality gate.
type stubStrategy struct{}

func (stubStrategy) Name() extract.StrategyName { return extract.StrategyText }

func (stubStrategy) Extract(context.Context, string, int, int) (string, int, error) {
	return strings.Repeat("当期の売上高は前期比で増加した。", 15), 1, nil
}

func testDeps(t *testing.T, llmClient *fakeAspectLLM) Deps {
	t.Helper()
	logger := testLogger()
	return Deps{
		Registry:  stubRegistryClient{},
		Index:     cache.NewIndex(t.TempDir(), logger),
		Extractor: extract.NewExtractor([]extract.Strategy{stubStrategy{}}, logger),
		LLM:       llmClient,
		Logger:    logger,
	}
}

func TestPipelineHappyPath(t *testing.T) {
	deps := testDeps(t, &fakeAspectLLM{})

	state, err := Run(context.Background(), deps, RunOptions{DocID: "S100ABCD"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(state.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", state.Errors)
	}

	wantNodes := []string{
		NodeAcquire, NodeParse,
		NodeBusinessSummary, NodeRiskExtraction, NodeFinancialAnalysis,
		NodeAggregate,
	}
	for _, name := range wantNodes {
		if position(state.CompletedNodes, name) < 0 {
			t.Errorf("completed nodes missing %s: %v", name, state.CompletedNodes)
		}
	}

	// Topological order holds in the finish-order trail.
	acquire := position(state.CompletedNodes, NodeAcquire)
	parse := position(state.CompletedNodes, NodeParse)
	aggregate := position(state.CompletedNodes, NodeAggregate)
	if acquire > parse {
		t.Errorf("acquire finished after parse: %v", state.CompletedNodes)
	}
	for _, aspect := range []string{NodeBusinessSummary, NodeRiskExtraction, NodeFinancialAnalysis} {
		pos := position(state.CompletedNodes, aspect)
		if pos < parse || pos > aggregate {
			t.Errorf("%s finished outside (parse, aggregate): %v", aspect, state.CompletedNodes)
		}
	}

	if state.Report == nil {
		t.Fatal("Report = nil, want composite report")
	}
	statuses := state.Report.AspectStatuses
	if statuses.BusinessSummary != models.AspectPresent ||
		statuses.RiskAnalysis != models.AspectPresent ||
		statuses.FinancialAnalysis != models.AspectPresent {
		t.Errorf("aspect statuses = %+v, want all present", statuses)
	}
	if statuses.PeriodComparison != models.AspectNotRequested {
		t.Errorf("PeriodComparison status = %s, want %s", statuses.PeriodComparison, models.AspectNotRequested)
	}
}

func TestPipelinePartialFailureStillAggregates(t *testing.T) {
	deps := testDeps(t, &fakeAspectLLM{failRisk: true})

	state, err := Run(context.Background(), deps, RunOptions{DocID: "S100ABCD"})
	if err != nil {
		t.Fatalf("Run() error = %v, want partial success", err)
	}

	if state.Report == nil {
		t.Fatal("Report = nil, want partial report")
	}
	statuses := state.Report.AspectStatuses
	if statuses.BusinessSummary != models.AspectPresent || statuses.FinancialAnalysis != models.AspectPresent {
		t.Errorf("surviving aspects = %+v, want present", statuses)
	}
	if statuses.RiskAnalysis != models.AspectFailed {
		t.Errorf("RiskAnalysis status = %s, want %s", statuses.RiskAnalysis, models.AspectFailed)
	}

	foundErr := false
	for _, e := range state.Errors {
		if strings.HasPrefix(e, NodeRiskExtraction+":") {
			foundErr = true
		}
	}
	if !foundErr {
		t.Errorf("Errors = %v, want an entry for %s", state.Errors, NodeRiskExtraction)
	}

	if position(state.CompletedNodes, NodeRiskExtraction) >= 0 {
		t.Errorf("failed node recorded as completed: %v", state.CompletedNodes)
	}
}

func TestPipelineWithPriorPeriod(t *testing.T) {
	deps := testDeps(t, &fakeAspectLLM{})

	state, err := Run(context.Background(), deps, RunOptions{
		DocID:      "S100ABCD",
		PriorDocID: "S100WXYZ",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, name := range []string{NodeAcquirePrior, NodeParsePrior, NodePeriodComparison} {
		if position(state.CompletedNodes, name) < 0 {
			t.Errorf("completed nodes missing %s: %v", name, state.CompletedNodes)
		}
	}
	if state.Report == nil || state.Report.AspectStatuses.PeriodComparison != models.AspectPresent {
		t.Errorf("PeriodComparison not present in report")
	}
}
