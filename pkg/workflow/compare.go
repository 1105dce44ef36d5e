package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dtnitsch/edinet-research-agent/models"
	"github.com/dtnitsch/edinet-research-agent/pkg/llm"
)

// PeriodComparisonNode diffs the current filing against the prior
// period. It waits for the three aspect nodes so their results can
// sharpen the comparison, but only the prior text is mandatory.
type PeriodComparisonNode struct {
	LLM llm.Client
}

func (*PeriodComparisonNode) Name() string { return NodePeriodComparison }

func (n *PeriodComparisonNode) Execute(ctx context.Context, state State) (Patch, error) {
	if state.PriorText == "" {
		return Patch{}, fmt.Errorf("no prior-period text available")
	}

	var b strings.Builder
	b.WriteString("## Current period filing (excerpt)\n\n")
	b.WriteString(truncateForPrompt(state.Text))
	b.WriteString("\n\n## Prior period filing (excerpt)\n\n")
	b.WriteString(truncateForPrompt(state.PriorText))

	// Aspect results, when they exist, anchor the comparison on what
	// the current-period analysis already found.
	aspects := []struct {
		name   string
		aspect any
	}{
		{"business summary", state.BusinessSummary},
		{"risk analysis", state.RiskAnalysis},
		{"financial analysis", state.FinancialAnalysis},
	}
	for _, a := range aspects {
		name, aspect := a.name, a.aspect
		data, err := json.Marshal(aspect)
		if err != nil || string(data) == "null" {
			continue
		}
		fmt.Fprintf(&b, "\n\n## Current period %s (structured)\n\n%s", name, data)
	}

	var comparison models.PeriodComparison
	if err := n.LLM.CompleteStructured(ctx, comparisonSystemPrompt, b.String(), &comparison); err != nil {
		return Patch{}, fmt.Errorf("period comparison failed: %w", err)
	}
	return Patch{PeriodComparison: &comparison}, nil
}
