package report

import (
	"strings"
	"testing"

	"github.com/dtnitsch/edinet-research-agent/models"
)

func sampleBusiness() *models.BusinessSummary {
	return &models.BusinessSummary{
		CompanyName:           "トヨタ自動車株式会社",
		BusinessDescription:   "自動車の製造販売を行う。世界各地で事業を展開する。",
		CompetitiveAdvantages: []string{"グローバルな生産体制"},
	}
}

func sampleRisks() *models.RiskAnalysis {
	return &models.RiskAnalysis{
		RiskSummary: "為替変動リスクが中心。",
		Risks: []models.RiskItem{
			{Category: "market", Title: "為替変動", Severity: "high"},
			{Category: "supply", Title: "部品調達", Severity: "low"},
		},
	}
}

func sampleFinancials() *models.FinancialAnalysis {
	return &models.FinancialAnalysis{
		RevenueAnalysis: "売上高は前期比10%増加した。",
		Highlights: []models.FinancialHighlight{
			{MetricName: "売上高", CurrentValue: "45兆円", Comment: "過去最高を更新"},
		},
	}
}

func TestBuildStatusMatrix(t *testing.T) {
	tests := []struct {
		name                string
		input               Input
		want                models.AspectStatuses
	}{
		{
			name: "all aspects present without comparison",
			input: Input{
				DocID: "S100ABCD", Text: "text",
				BusinessSummary: sampleBusiness(), RiskAnalysis: sampleRisks(), FinancialAnalysis: sampleFinancials(),
			},
			want: models.AspectStatuses{
				BusinessSummary:   models.AspectPresent,
				RiskAnalysis:      models.AspectPresent,
				FinancialAnalysis: models.AspectPresent,
				PeriodComparison:  models.AspectNotRequested,
			},
		},
		{
			name: "one aspect failed",
			input: Input{
				DocID: "S100ABCD", Text: "text",
				BusinessSummary: sampleBusiness(), FinancialAnalysis: sampleFinancials(),
			},
			want: models.AspectStatuses{
				BusinessSummary:   models.AspectPresent,
				RiskAnalysis:      models.AspectFailed,
				FinancialAnalysis: models.AspectPresent,
				PeriodComparison:  models.AspectNotRequested,
			},
		},
		{
			name: "comparison requested but failed",
			input: Input{
				DocID: "S100ABCD", Text: "text",
				BusinessSummary: sampleBusiness(), RiskAnalysis: sampleRisks(), FinancialAnalysis: sampleFinancials(),
				ComparisonRequested: true,
			},
			want: models.AspectStatuses{
				BusinessSummary:   models.AspectPresent,
				RiskAnalysis:      models.AspectPresent,
				FinancialAnalysis: models.AspectPresent,
				PeriodComparison:  models.AspectFailed,
			},
		},
		{
			name: "comparison present",
			input: Input{
				DocID: "S100ABCD", Text: "text",
				BusinessSummary: sampleBusiness(), RiskAnalysis: sampleRisks(), FinancialAnalysis: sampleFinancials(),
				PeriodComparison:    &models.PeriodComparison{OverallAssessment: "大きな変化なし。"},
				ComparisonRequested: true,
			},
			want: models.AspectStatuses{
				BusinessSummary:   models.AspectPresent,
				RiskAnalysis:      models.AspectPresent,
				FinancialAnalysis: models.AspectPresent,
				PeriodComparison:  models.AspectPresent,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rpt, err := Build(tt.input)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if rpt.AspectStatuses != tt.want {
				t.Errorf("AspectStatuses = %+v, want %+v", rpt.AspectStatuses, tt.want)
			}
		})
	}
}

func TestBuildFailsOnlyWhenNothingUsable(t *testing.T) {
	_, err := Build(Input{DocID: "S100ABCD"})
	if err == nil {
		t.Fatal("Build() error = nil, want failure with no text and no aspects")
	}

	// Text alone is enough for a (thin) report.
	rpt, err := Build(Input{DocID: "S100ABCD", Text: "抽出テキストのみ。"})
	if err != nil {
		t.Fatalf("Build() error = %v, want text-only report", err)
	}
	if rpt.ExecutiveSummary == "" {
		t.Error("ExecutiveSummary empty for text-only report")
	}

	// A single aspect alone is also enough.
	if _, err := Build(Input{DocID: "S100ABCD", BusinessSummary: sampleBusiness()}); err != nil {
		t.Fatalf("Build() error = %v, want aspect-only report", err)
	}
}

func TestBuildHighlightsAndConcerns(t *testing.T) {
	rpt, err := Build(Input{
		DocID: "S100ABCD", Text: "text",
		BusinessSummary:   sampleBusiness(),
		RiskAnalysis:      sampleRisks(),
		FinancialAnalysis: sampleFinancials(),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(rpt.InvestmentHighlights) == 0 {
		t.Error("InvestmentHighlights empty")
	}

	// Only the high-severity risk becomes a concern.
	if len(rpt.Concerns) != 1 || !strings.Contains(rpt.Concerns[0], "為替変動") {
		t.Errorf("Concerns = %v, want single high-severity entry", rpt.Concerns)
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"japanese period", "売上は増加した。利益も増加した。", "売上は増加した。"},
		{"english period", "Revenue grew. Profit grew too.", "Revenue grew."},
		{"no boundary", "boundless", "boundless"},
		{"decimal not a boundary", "Revenue grew 10.5% over the year", "Revenue grew 10.5% over the year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstSentence(tt.in); got != tt.want {
				t.Errorf("firstSentence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTopKeywords(t *testing.T) {
	text := "growth growth growth market market the of to revenue"
	got := TopKeywords(text, 3)
	if len(got) != 3 {
		t.Fatalf("TopKeywords() = %v, want 3 entries", got)
	}
	if got[0] != "growth" || got[1] != "market" {
		t.Errorf("TopKeywords() = %v, want growth then market first", got)
	}
	for _, kw := range got {
		if isStopword(kw) {
			t.Errorf("stopword %q in keywords %v", kw, got)
		}
	}
}
