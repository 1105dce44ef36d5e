package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dtnitsch/edinet-research-agent/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubNode is a minimal Node for topology tests.
type stubNode struct {
	name string
	err  error
}

func (s *stubNode) Name() string { return s.name }

func (s *stubNode) Execute(context.Context, State) (Patch, error) {
	return Patch{}, s.err
}

func TestGraphRejectsCycle(t *testing.T) {
	entries := []Entry{
		{Node: &stubNode{name: "a"}, WaitFor: []string{"b"}},
		{Node: &stubNode{name: "b"}, WaitFor: []string{"a"}},
	}
	if _, err := NewGraph(entries, testLogger()); err == nil {
		t.Fatal("NewGraph() error = nil, want cycle error")
	}
}

func TestGraphRejectsUnknownDependency(t *testing.T) {
	entries := []Entry{
		{Node: &stubNode{name: "a"}, WaitFor: []string{"ghost"}},
	}
	if _, err := NewGraph(entries, testLogger()); err == nil {
		t.Fatal("NewGraph() error = nil, want unknown-dependency error")
	}
}

func TestGraphRejectsDuplicateNames(t *testing.T) {
	entries := []Entry{
		{Node: &stubNode{name: "a"}},
		{Node: &stubNode{name: "a"}},
	}
	if _, err := NewGraph(entries, testLogger()); err == nil {
		t.Fatal("NewGraph() error = nil, want duplicate-name error")
	}
}

func TestGraphSkipsStrictDependentsOnFailure(t *testing.T) {
	entries := []Entry{
		{Node: &stubNode{name: "a", err: errors.New("boom")}},
		{Node: &stubNode{name: "b"}, Requires: []string{"a"}},
		{Node: &stubNode{name: "c"}},
		{Node: &stubNode{name: NodeAggregate}, WaitFor: []string{"b", "c"}},
	}
	graph, err := NewGraph(entries, testLogger())
	if err != nil {
		t.Fatalf("NewGraph() error = %v", err)
	}

	state, err := graph.Run(context.Background(), State{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	completed := strings.Join(state.CompletedNodes, ",")
	if strings.Contains(completed, "b") {
		t.Errorf("skipped node b completed: %s", completed)
	}
	if !strings.Contains(completed, "c") {
		t.Errorf("independent node c did not complete: %s", completed)
	}
	if len(state.Errors) != 1 || !strings.HasPrefix(state.Errors[0], "a:") {
		t.Errorf("Errors = %v, want one entry for node a", state.Errors)
	}
}

func TestMergeList(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		incoming []string
		want     []string
	}{
		{"append new", []string{"a"}, []string{"b"}, []string{"a", "b"}},
		{"dedup incoming", []string{"a"}, []string{"a", "b", "b"}, []string{"a", "b"}},
		{"preserve first-insertion order", []string{"b", "a"}, []string{"a", "c"}, []string{"b", "a", "c"}},
		{"empty incoming", []string{"a"}, nil, []string{"a"}},
		{"empty existing", nil, []string{"x", "x"}, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeList(tt.existing, tt.incoming)
			if len(got) != len(tt.want) {
				t.Fatalf("mergeList() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("mergeList()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// fakeAspectLLM serves canned aspect results, with selectable failures.
type fakeAspectLLM struct {
	failRisk bool
}

func (f *fakeAspectLLM) CompleteStructured(_ context.Context, _, _ string, out any) error {
	switch v := out.(type) {
	case *models.BusinessSummary:
		v.CompanyName = "トヨタ自動車株式会社"
		v.BusinessDescription = "自動車の製造販売。"
	case *models.RiskAnalysis:
		if f.failRisk {
			return fmt.Errorf("rate limited")
		}
		v.RiskSummary = "為替変動リスクが中心。"
		v.Risks = []models.RiskItem{{Category: "market", Title: "為替変動", Severity: "high"}}
	case *models.FinancialAnalysis:
		v.RevenueAnalysis = "売上高は増加した。"
	case *models.PeriodComparison:
		v.OverallAssessment = "前期から大きな変化なし。"
	default:
		return fmt.Errorf("unexpected target type %T", out)
	}
	return nil
}

func (f *fakeAspectLLM) CompleteVision(context.Context, string, []byte, string) (string, error) {
	return "", fmt.Errorf("vision not available in tests")
}

func (f *fakeAspectLLM) ModelName() string { return "fake-model" }

// position returns the index of name in list, or -1.
func position(list []string, name string) int {
	for i, item := range list {
		if item == name {
			return i
		}
	}
	return -1
}
