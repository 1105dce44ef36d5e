package models

import "time"

// AspectStatus records why an aspect is or is not in a composite report.
type AspectStatus string

const (
	AspectPresent      AspectStatus = "present"
	AspectFailed       AspectStatus = "failed"
	AspectNotRequested AspectStatus = "not_requested"
)

// BusinessSegment is one reported business segment.
type BusinessSegment struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	RevenueShare string   `json:"revenue_share,omitempty" yaml:"revenue_share,omitempty"`
	KeyProducts  []string `json:"key_products,omitempty" yaml:"key_products,omitempty"`
}

// BusinessSummary is the business-overview aspect extracted from a filing.
type BusinessSummary struct {
	CompanyName           string            `json:"company_name" yaml:"company_name"`
	FiscalYear            string            `json:"fiscal_year" yaml:"fiscal_year"`
	BusinessDescription   string            `json:"business_description" yaml:"business_description"`
	MainProductsServices  []string          `json:"main_products_services,omitempty" yaml:"main_products_services,omitempty"`
	BusinessSegments      []BusinessSegment `json:"business_segments,omitempty" yaml:"business_segments,omitempty"`
	CompetitiveAdvantages []string          `json:"competitive_advantages,omitempty" yaml:"competitive_advantages,omitempty"`
	GrowthStrategy        string            `json:"growth_strategy" yaml:"growth_strategy"`
	KeyInitiatives        []string          `json:"key_initiatives,omitempty" yaml:"key_initiatives,omitempty"`
}

// RiskItem is one disclosed risk factor.
type RiskItem struct {
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Severity    string `json:"severity" yaml:"severity"` // high / medium / low
	Mitigation  string `json:"mitigation,omitempty" yaml:"mitigation,omitempty"`
}

// RiskAnalysis is the risk aspect extracted from a filing.
type RiskAnalysis struct {
	Risks       []RiskItem `json:"risks" yaml:"risks"`
	NewRisks    []string   `json:"new_risks,omitempty" yaml:"new_risks,omitempty"`
	RiskSummary string     `json:"risk_summary" yaml:"risk_summary"`
}

// FinancialHighlight is one headline metric with period-over-period context.
type FinancialHighlight struct {
	MetricName   string `json:"metric_name" yaml:"metric_name"`
	CurrentValue string `json:"current_value" yaml:"current_value"`
	PriorValue   string `json:"prior_value,omitempty" yaml:"prior_value,omitempty"`
	ChangeRate   string `json:"change_rate,omitempty" yaml:"change_rate,omitempty"`
	Comment      string `json:"comment" yaml:"comment"`
}

// FinancialAnalysis is the financial aspect extracted from a filing.
type FinancialAnalysis struct {
	RevenueAnalysis   string               `json:"revenue_analysis" yaml:"revenue_analysis"`
	ProfitAnalysis    string               `json:"profit_analysis" yaml:"profit_analysis"`
	CashFlowAnalysis  string               `json:"cash_flow_analysis" yaml:"cash_flow_analysis"`
	FinancialPosition string               `json:"financial_position" yaml:"financial_position"`
	Highlights        []FinancialHighlight `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Outlook           string               `json:"outlook" yaml:"outlook"`
}

// ChangePoint is one material change between reporting periods.
type ChangePoint struct {
	Category     string `json:"category" yaml:"category"`
	Title        string `json:"title" yaml:"title"`
	PriorState   string `json:"prior_state" yaml:"prior_state"`
	CurrentState string `json:"current_state" yaml:"current_state"`
	Significance string `json:"significance" yaml:"significance"` // high / medium / low
	Implication  string `json:"implication" yaml:"implication"`
}

// PeriodComparison is the prior-period comparison aspect.
type PeriodComparison struct {
	ChangePoints      []ChangePoint `json:"change_points" yaml:"change_points"`
	NewDevelopments   []string      `json:"new_developments,omitempty" yaml:"new_developments,omitempty"`
	DiscontinuedItems []string      `json:"discontinued_items,omitempty" yaml:"discontinued_items,omitempty"`
	OverallAssessment string        `json:"overall_assessment" yaml:"overall_assessment"`
}

// CompositeReport is the terminal output of one analysis run. Each
// aspect carries an explicit status so a consumer can tell an aspect
// that was never requested from one that was attempted and failed.
type CompositeReport struct {
	DocID            string       `json:"doc_id" yaml:"doc_id"`
	ExecutiveSummary string       `json:"executive_summary" yaml:"executive_summary"`
	AspectStatuses   AspectStatuses `json:"aspect_statuses" yaml:"aspect_statuses"`

	BusinessSummary   *BusinessSummary   `json:"business_summary,omitempty" yaml:"business_summary,omitempty"`
	RiskAnalysis      *RiskAnalysis      `json:"risk_analysis,omitempty" yaml:"risk_analysis,omitempty"`
	FinancialAnalysis *FinancialAnalysis `json:"financial_analysis,omitempty" yaml:"financial_analysis,omitempty"`
	PeriodComparison  *PeriodComparison  `json:"period_comparison,omitempty" yaml:"period_comparison,omitempty"`

	InvestmentHighlights []string `json:"investment_highlights,omitempty" yaml:"investment_highlights,omitempty"`
	Concerns             []string `json:"concerns,omitempty" yaml:"concerns,omitempty"`
	TopKeywords          []string `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"`

	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// AspectStatuses holds the per-aspect outcome of a run.
type AspectStatuses struct {
	BusinessSummary   AspectStatus `json:"business_summary" yaml:"business_summary"`
	RiskAnalysis      AspectStatus `json:"risk_analysis" yaml:"risk_analysis"`
	FinancialAnalysis AspectStatus `json:"financial_analysis" yaml:"financial_analysis"`
	PeriodComparison  AspectStatus `json:"period_comparison" yaml:"period_comparison"`
}
