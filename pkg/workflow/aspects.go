package workflow

import (
	"context"
	"fmt"

	"github.com/dtnitsch/edinet-research-agent/models"
	"github.com/dtnitsch/edinet-research-agent/pkg/llm"
)

// BusinessSummaryNode extracts the business-overview aspect.
type BusinessSummaryNode struct {
	LLM llm.Client
}

func (*BusinessSummaryNode) Name() string { return NodeBusinessSummary }

func (n *BusinessSummaryNode) Execute(ctx context.Context, state State) (Patch, error) {
	if state.Text == "" {
		return Patch{}, fmt.Errorf("no filing text available")
	}
	var summary models.BusinessSummary
	prompt := "Analyze the following filing text:\n\n" + truncateForPrompt(state.Text)
	if err := n.LLM.CompleteStructured(ctx, businessSystemPrompt, prompt, &summary); err != nil {
		return Patch{}, fmt.Errorf("business summary failed: %w", err)
	}
	return Patch{BusinessSummary: &summary}, nil
}

// RiskExtractionNode extracts the disclosed risk factors.
type RiskExtractionNode struct {
	LLM llm.Client
}

func (*RiskExtractionNode) Name() string { return NodeRiskExtraction }

func (n *RiskExtractionNode) Execute(ctx context.Context, state State) (Patch, error) {
	if state.Text == "" {
		return Patch{}, fmt.Errorf("no filing text available")
	}
	var risks models.RiskAnalysis
	prompt := "Extract the risk factors from the following filing text:\n\n" + truncateForPrompt(state.Text)
	if err := n.LLM.CompleteStructured(ctx, riskSystemPrompt, prompt, &risks); err != nil {
		return Patch{}, fmt.Errorf("risk extraction failed: %w", err)
	}
	return Patch{RiskAnalysis: &risks}, nil
}

// FinancialAnalysisNode extracts the financial aspect.
type FinancialAnalysisNode struct {
	LLM llm.Client
}

func (*FinancialAnalysisNode) Name() string { return NodeFinancialAnalysis }

func (n *FinancialAnalysisNode) Execute(ctx context.Context, state State) (Patch, error) {
	if state.Text == "" {
		return Patch{}, fmt.Errorf("no filing text available")
	}
	var fin models.FinancialAnalysis
	prompt := "Analyze the financial condition described in the following filing text:\n\n" + truncateForPrompt(state.Text)
	if err := n.LLM.CompleteStructured(ctx, financialSystemPrompt, prompt, &fin); err != nil {
		return Patch{}, fmt.Errorf("financial analysis failed: %w", err)
	}
	return Patch{FinancialAnalysis: &fin}, nil
}
