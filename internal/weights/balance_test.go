package weights

import (
	"context"
	"fmt"
	"math"
	"testing"
)

func TestNormalizeResponseKey(t *testing.T) {
	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"q45", "q45", true},
		{"12", "12", true},
		{"week-1-user-123-q45", "q45", true},
		{"survey-12", "12", true},
		{"survey-q7", "q7", true},
		{"free-text-comment", "", false},
		{"week-2-q45-extra", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		id, ok := NormalizeResponseKey(tt.key)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("NormalizeResponseKey(%q) = (%q, %v), want (%q, %v)", tt.key, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func financialQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{ID: intToID(i), Category: "Financial Tasks", TotalWeight: 1}
	}
	return qs
}

func intToID(i int) string {
	return fmt.Sprintf("q%d", i+1)
}

func TestScoreBalanceAllPapa(t *testing.T) {
	calc := testCalculator()
	questions := financialQuestions(2)
	responses := map[string]string{
		"q1": "Papa",
		"q2": "Papa",
	}

	report := calc.ScoreBalance(context.Background(), questions, responses, nil, "2.0")
	cb, ok := report.Categories["Financial Tasks"]
	if !ok {
		t.Fatal("Financial Tasks missing from report")
	}
	if cb.PapaPct != 100 || cb.MamaPct != 0 {
		t.Errorf("split = mama %v / papa %v, want 0/100", cb.MamaPct, cb.PapaPct)
	}
	if cb.BurnoutRisk != "severe" {
		t.Errorf("burnout risk = %s, want severe", cb.BurnoutRisk)
	}
	// Full coverage, so imbalance is the raw 100-point gap.
	if !almostEqual(cb.Imbalance, 100) {
		t.Errorf("imbalance = %v, want 100", cb.Imbalance)
	}
	if report.Overall.BurnoutRisk != "severe" {
		t.Errorf("overall risk = %s, want severe", report.Overall.BurnoutRisk)
	}
}

func TestScoreBalanceCoverageDiscount(t *testing.T) {
	calc := testCalculator()
	// Ten possible questions, one answered: coverage 0.1 < 0.5.
	questions := make([]Question, 10)
	for i := range questions {
		questions[i] = Question{ID: intToID(i), Category: "Financial Tasks", TotalWeight: 1}
	}
	responses := map[string]string{"q1": "Papa"}

	report := calc.ScoreBalance(context.Background(), questions, responses, nil, "2.0")
	cb := report.Categories["Financial Tasks"]
	want := 100 * (0.5 + 0.1)
	if !almostEqual(cb.Imbalance, want) {
		t.Errorf("imbalance = %v, want %v", cb.Imbalance, want)
	}
}

func TestScoreBalanceNeutralSplit(t *testing.T) {
	calc := testCalculator()
	questions := []Question{{ID: "q1", Category: "Emotional Support", TotalWeight: 2}}

	for _, answer := range []string{"Both", "Neutral", "Neither"} {
		report := calc.ScoreBalance(context.Background(), questions, map[string]string{"q1": answer}, nil, "1.0")
		cb := report.Categories["Emotional Support"]
		if cb.MamaPct != 50 || cb.PapaPct != 50 {
			t.Errorf("%s: split = %v/%v, want 50/50", answer, cb.MamaPct, cb.PapaPct)
		}
		if cb.NeutralPct != 100 {
			t.Errorf("%s: neutral = %v, want 100", answer, cb.NeutralPct)
		}
	}
}

func TestScoreBalanceV1UsesQuestionWeight(t *testing.T) {
	calc := testCalculator()
	questions := []Question{
		{ID: "q1", Category: "Financial Tasks", TotalWeight: 3},
		{ID: "q2", Category: "Financial Tasks", TotalWeight: 1},
	}
	responses := map[string]string{"q1": "Mama", "q2": "Papa"}

	report := calc.ScoreBalance(context.Background(), questions, responses, nil, "1.0")
	cb := report.Categories["Financial Tasks"]
	if !almostEqual(cb.MamaPct, 75) || !almostEqual(cb.PapaPct, 25) {
		t.Errorf("split = %v/%v, want 75/25", cb.MamaPct, cb.PapaPct)
	}
	if report.Overall.BurnoutRisk != "unknown" {
		t.Errorf("v1 overall risk = %s, want unknown", report.Overall.BurnoutRisk)
	}
}

func TestScoreBalanceEmpty(t *testing.T) {
	calc := testCalculator()
	report := calc.ScoreBalance(context.Background(), nil, map[string]string{}, nil, "2.0")
	if report.Overall.MamaPct != 50 || report.Overall.PapaPct != 50 {
		t.Errorf("empty overall = %v/%v, want 50/50", report.Overall.MamaPct, report.Overall.PapaPct)
	}
	if report.Overall.BurnoutRisk != "unknown" {
		t.Errorf("empty overall risk = %s, want unknown", report.Overall.BurnoutRisk)
	}
}

func TestScoreBalanceUnparsedAndInvalid(t *testing.T) {
	calc := testCalculator()
	questions := []Question{{ID: "q1", Category: "Financial Tasks"}}
	responses := map[string]string{
		"q1":                "Mama",
		"free-text-comment": "Papa",  // unparseable key, counted
		"q1-note":           "hello", // invalid answer, ignored
	}

	report := calc.ScoreBalance(context.Background(), questions, responses, nil, "2.0")
	if report.Unparsed != 1 {
		t.Errorf("unparsed = %d, want 1", report.Unparsed)
	}
	if cb := report.Categories["Financial Tasks"]; cb.QuestionCount != 1 {
		t.Errorf("question count = %d, want 1", cb.QuestionCount)
	}
}

func TestScoreBalancePriorityOverridesCategoryWeight(t *testing.T) {
	calc := testCalculator()
	questions := []Question{
		{ID: "q1", Category: "Financial Tasks", TotalWeight: 1},
		{ID: "q2", Category: "Social Management", TotalWeight: 1},
	}
	responses := map[string]string{"q1": "Mama", "q2": "Papa"}
	priorities := &Priorities{Highest: "Financial Tasks"}

	report := calc.ScoreBalance(context.Background(), questions, responses, priorities, "1.0")
	// Financial carries 1.5 vs Social 1.1, so the overall leans mama.
	want := (100*1.5 + 0*1.1) / (1.5 + 1.1)
	if math.Abs(report.Overall.MamaPct-want) > 1e-9 {
		t.Errorf("overall mama = %v, want %v", report.Overall.MamaPct, want)
	}
}
