package relstyle

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fairload-app/fairload/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInferDefaults(t *testing.T) {
	p := Infer(&store.Family{})
	if p.Style != StyleEgalitarian || p.Division != DivisionBalanced || p.Confidence != "low" {
		t.Errorf("defaults: %+v", p)
	}
	if p.Communication != CommMixed || p.Conflict != ConflictCompromising {
		t.Errorf("secondary defaults: %+v", p)
	}
}

func TestInferFromDemographics(t *testing.T) {
	p := Infer(&store.Family{Demographics: &store.Demographics{BackgroundTags: []string{"conservative"}}})
	if p.Style != StyleTraditional || p.Division != DivisionGendered {
		t.Errorf("conservative tag: %+v", p)
	}
	if p.Confidence != "low" {
		t.Errorf("demographics alone should stay low confidence, got %s", p.Confidence)
	}

	// Religion matters only at high religiosity.
	p = Infer(&store.Family{Demographics: &store.Demographics{Religion: "Orthodox", Religiosity: "moderate"}})
	if p.Style != StyleEgalitarian {
		t.Errorf("moderate religiosity changed style: %+v", p)
	}
	p = Infer(&store.Family{Demographics: &store.Demographics{Religion: "Orthodox", Religiosity: "high"}})
	if p.Style != StyleTraditional || p.Division != DivisionGendered {
		t.Errorf("high religiosity: %+v", p)
	}
}

func TestInferFromLaborSurvey(t *testing.T) {
	tests := []struct {
		approach     string
		wantStyle    string
		wantDivision string
	}{
		{"equal", StyleEgalitarian, DivisionBalanced},
		{"traditional", StyleTraditional, DivisionGendered},
		{"strengths", StyleComplementary, DivisionExpertise},
		{"preferences", StyleCollaborative, DivisionPreference},
		{"separate", StyleIndependent, DivisionBalanced},
	}
	for _, tt := range tests {
		p := Infer(&store.Family{Labor: &store.LaborSurvey{Approach: tt.approach}})
		if p.Style != tt.wantStyle || p.Division != tt.wantDivision {
			t.Errorf("approach %s: got %s/%s, want %s/%s", tt.approach, p.Style, p.Division, tt.wantStyle, tt.wantDivision)
		}
		if p.Confidence != "medium" {
			t.Errorf("approach %s: confidence %s, want medium", tt.approach, p.Confidence)
		}
	}
}

func TestInferRelationshipSurveyIsStrongest(t *testing.T) {
	family := &store.Family{
		Labor: &store.LaborSurvey{Approach: "traditional"},
		Relationship: &store.RelationshipSurvey{
			DecisionMaking: "joint",
			Communication:  "analytical",
			ConflictStyle:  "avoid",
		},
	}
	p := Infer(family)
	if p.Style != StyleCollaborative {
		t.Errorf("style = %s, want collaborative", p.Style)
	}
	if p.Communication != CommAnalytical || p.Conflict != ConflictAvoiding {
		t.Errorf("secondary axes: %+v", p)
	}
	if p.Confidence != "high" {
		t.Errorf("confidence = %s, want high", p.Confidence)
	}
}

func TestAnalyzeBalance(t *testing.T) {
	if AnalyzeBalance(nil) != nil {
		t.Fatal("nil result should yield nil insights")
	}

	result := &store.BalanceResult{
		Overall: store.OverallBalance{MamaPct: 70, PapaPct: 30, Imbalance: 40},
		Categories: map[string]store.CategoryBalance{
			"Financial Tasks":          {MamaPct: 20, PapaPct: 80, Imbalance: 60},
			"Emotional Support":        {MamaPct: 85, PapaPct: 15, Imbalance: 70},
			"Visible Household Tasks":  {MamaPct: 55, PapaPct: 45, Imbalance: 10},
		},
	}
	bi := AnalyzeBalance(result)
	if !bi.Substantial || bi.MoreWorkParent != ParentMama {
		t.Errorf("insights = %+v", bi)
	}
	if len(bi.CategoryPatterns) != 2 {
		t.Fatalf("category patterns = %+v", bi.CategoryPatterns)
	}
	if bi.CategoryPatterns[0].Category != "Emotional Support" {
		t.Errorf("patterns not sorted by imbalance: %+v", bi.CategoryPatterns)
	}
	if bi.CategoryPatterns[1].MoreWorkParent != ParentPapa {
		t.Errorf("financial dominance = %+v", bi.CategoryPatterns[1])
	}
}

func TestRefineFromBalance(t *testing.T) {
	base := Profile{Style: StyleTraditional, Division: DivisionGendered}

	// Very balanced with a non-balanced division reads collaborative.
	p := RefineFromBalance(base, &BalanceInsights{OverallImbalance: 10})
	if p.Style != StyleCollaborative {
		t.Errorf("low imbalance: %s", p.Style)
	}
	p = RefineFromBalance(Profile{Style: StyleTraditional, Division: DivisionBalanced}, &BalanceInsights{OverallImbalance: 10})
	if p.Style != StyleEgalitarian {
		t.Errorf("low imbalance balanced division: %s", p.Style)
	}

	// Highly imbalanced toward mama reads traditional, toward papa
	// complementary.
	p = RefineFromBalance(Profile{Style: StyleEgalitarian}, &BalanceInsights{OverallImbalance: 50, MamaPct: 75, PapaPct: 25})
	if p.Style != StyleTraditional {
		t.Errorf("mama-heavy: %s", p.Style)
	}
	p = RefineFromBalance(Profile{Style: StyleEgalitarian}, &BalanceInsights{OverallImbalance: 50, MamaPct: 25, PapaPct: 75})
	if p.Style != StyleComplementary {
		t.Errorf("papa-heavy: %s", p.Style)
	}

	// Mixed category dominance overrides everything.
	p = RefineFromBalance(Profile{Style: StyleEgalitarian}, &BalanceInsights{
		OverallImbalance: 20,
		CategoryPatterns: []CategoryPattern{
			{Category: "Emotional Support", MoreWorkParent: ParentMama},
			{Category: "Financial Tasks", MoreWorkParent: ParentPapa},
		},
	})
	if p.Style != StyleComplementary || p.Division != DivisionExpertise {
		t.Errorf("mixed dominance: %+v", p)
	}

	if p = RefineFromBalance(base, nil); p.Style != StyleTraditional {
		t.Errorf("nil insights changed profile: %+v", p)
	}
}

func TestComputeAdjustments(t *testing.T) {
	// Traditional with gendered division widens the skew, clamped.
	adj := ComputeAdjustments(Profile{Style: StyleTraditional, Division: DivisionGendered})
	if got := adj.Categories["Invisible Household Tasks"]; got != (Split{1.5, 0.5}) {
		t.Errorf("Invisible Household Tasks = %+v, want {1.5 0.5}", got)
	}
	if got := adj.Categories["Financial Tasks"]; got != (Split{0.6, 1.4}) {
		t.Errorf("Financial Tasks = %+v, want {0.6 1.4}", got)
	}

	// Balanced division flattens any style to 1.0.
	adj = ComputeAdjustments(Profile{Style: StyleTraditional, Division: DivisionBalanced})
	for category, s := range adj.Categories {
		if s != (Split{1.0, 1.0}) {
			t.Errorf("%s = %+v, want {1 1}", category, s)
		}
	}

	// Egalitarian is even everywhere.
	adj = ComputeAdjustments(Profile{Style: StyleEgalitarian})
	if got := adj.Categories["Emotional Support"]; got != (Split{1.0, 1.0}) {
		t.Errorf("egalitarian Emotional Support = %+v", got)
	}

	// Collaborative keeps a slight invisible-work skew.
	adj = ComputeAdjustments(Profile{Style: StyleCollaborative, Division: DivisionPreference})
	if got := adj.Categories["Invisible Parental Tasks"]; got != (Split{1.1, 0.9}) {
		t.Errorf("collaborative Invisible Parental Tasks = %+v", got)
	}
	if got := adj.Categories["Visible Household Tasks"]; got != (Split{1.0, 1.0}) {
		t.Errorf("collaborative Visible Household Tasks = %+v", got)
	}

	// Complementary defaults to the moderate traditional pattern.
	adj = ComputeAdjustments(Profile{Style: StyleComplementary, Division: DivisionExpertise})
	if got := adj.Categories["Financial Tasks"]; got != (Split{0.9, 1.1}) {
		t.Errorf("complementary Financial Tasks = %+v", got)
	}
}

func TestApply(t *testing.T) {
	adj := &Adjustments{Categories: map[string]Split{
		"Emotional Support": {Mama: 1.3, Papa: 0.7},
	}}

	task := &store.Task{Name: "Comforting after school", Category: "Emotional Support", BaseWeight: 2}
	adjusted, adaptation := Apply(task, ParentMama, adj)
	if adaptation == nil || adaptation.Type != "relationship_style" {
		t.Fatalf("adaptation = %+v", adaptation)
	}
	if adjusted.BaseWeight != 2*1.3 {
		t.Errorf("mama weight = %v", adjusted.BaseWeight)
	}
	if task.BaseWeight != 2 {
		t.Error("input task mutated")
	}

	adjusted, _ = Apply(task, ParentPapa, adj)
	if adjusted.BaseWeight != 2*0.7 {
		t.Errorf("papa weight = %v", adjusted.BaseWeight)
	}

	// Unknown category or parent leaves the task alone.
	other := &store.Task{Name: "Laundry", Category: "Visible Household Tasks", BaseWeight: 2}
	if _, adaptation = Apply(other, ParentMama, adj); adaptation != nil {
		t.Errorf("unknown category adapted: %+v", adaptation)
	}
	if _, adaptation = Apply(task, "grandma", adj); adaptation != nil {
		t.Errorf("unknown parent adapted: %+v", adaptation)
	}

	// Default base weight of 3 when unset.
	unset := &store.Task{Category: "Emotional Support"}
	adjusted, _ = Apply(unset, ParentMama, adj)
	if adjusted.BaseWeight != 3*1.3 {
		t.Errorf("default base weight = %v", adjusted.BaseWeight)
	}
}

type fakeStore struct {
	store.Store

	family   *store.Family
	balances []*store.BalanceResult
	analyses map[uuid.UUID]*store.Analysis
	created  []*store.Analysis
	pointers map[store.AnalysisKind]uuid.UUID
}

func newFakeStore(family *store.Family) *fakeStore {
	return &fakeStore{
		family:   family,
		analyses: make(map[uuid.UUID]*store.Analysis),
		pointers: make(map[store.AnalysisKind]uuid.UUID),
	}
}

func (f *fakeStore) GetFamily(ctx context.Context, id string) (*store.Family, error) {
	if f.family != nil && f.family.ID == id {
		return f.family, nil
	}
	return nil, nil
}

func (f *fakeStore) GetRecentBalanceResults(ctx context.Context, familyID string, limit int) ([]*store.BalanceResult, error) {
	if len(f.balances) > limit {
		return f.balances[:limit], nil
	}
	return f.balances, nil
}

func (f *fakeStore) CreateAnalysis(ctx context.Context, a *store.Analysis) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	f.analyses[a.ID] = a
	f.created = append(f.created, a)
	return nil
}

func (f *fakeStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*store.Analysis, error) {
	return f.analyses[id], nil
}

func (f *fakeStore) GetLatestAnalysis(ctx context.Context, familyID string, kind store.AnalysisKind) (*store.Analysis, error) {
	return nil, nil
}

func (f *fakeStore) SetAnalysisPointer(ctx context.Context, familyID string, kind store.AnalysisKind, id uuid.UUID) error {
	f.pointers[kind] = id
	return nil
}

func TestAnalyzeRefinesFromStoredBalance(t *testing.T) {
	fs := newFakeStore(&store.Family{ID: "fam-1"})
	fs.balances = []*store.BalanceResult{{
		FamilyID: "fam-1",
		Overall:  store.OverallBalance{MamaPct: 78, PapaPct: 22, Imbalance: 56},
	}}
	svc := NewService(fs, discardLogger())

	analysis, err := svc.Analyze(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Profile.Style != StyleTraditional {
		t.Errorf("style = %s, want traditional from mama-heavy balance", analysis.Profile.Style)
	}
	if analysis.Profile.Confidence != "medium" {
		t.Errorf("confidence = %s, want medium with balance data", analysis.Profile.Confidence)
	}
	if analysis.BalanceInsights == nil || !analysis.BalanceInsights.Substantial {
		t.Errorf("balance insights = %+v", analysis.BalanceInsights)
	}
	if len(analysis.Insights) == 0 {
		t.Error("no insights generated")
	}
	if len(fs.created) != 1 {
		t.Fatalf("analyses created = %d, want 1", len(fs.created))
	}
	if _, ok := fs.pointers[store.AnalysisRelationship]; !ok {
		t.Error("cache pointer not written")
	}
}

func TestAnalyzeMissingFamily(t *testing.T) {
	svc := NewService(newFakeStore(nil), discardLogger())
	if _, err := svc.Analyze(context.Background(), "nope"); err == nil {
		t.Error("expected family not found error")
	}
}

func TestLatestPrefersCachePointer(t *testing.T) {
	fs := newFakeStore(&store.Family{ID: "fam-1"})
	svc := NewService(fs, discardLogger())

	first, err := svc.Analyze(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	fs.family.AnalysisPointers = map[store.AnalysisKind]uuid.UUID{
		store.AnalysisRelationship: fs.created[0].ID,
	}

	got, err := svc.Latest(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.Profile.Style != first.Profile.Style {
		t.Errorf("cached style = %s, want %s", got.Profile.Style, first.Profile.Style)
	}
	if len(fs.created) != 1 {
		t.Error("cached hit recomputed")
	}
}

func TestRecommendPerStyle(t *testing.T) {
	surveys := map[string]string{
		StyleTraditional:   "hierarchical",
		StyleEgalitarian:   "equal",
		StyleComplementary: "specialized",
		StyleIndependent:   "independent",
		StyleCollaborative: "joint",
	}
	for style, decision := range surveys {
		fs := newFakeStore(&store.Family{
			ID:           "fam-1",
			Relationship: &store.RelationshipSurvey{DecisionMaking: decision},
		})
		svc := NewService(fs, discardLogger())

		rec, err := svc.Recommend(context.Background(), "fam-1")
		if err != nil {
			t.Fatalf("Recommend(%s): %v", style, err)
		}
		if !rec.HasRecommendations || rec.Style != style {
			t.Errorf("Recommend(%s) = %+v", style, rec)
		}
		if len(rec.Recommendations) == 0 {
			t.Errorf("Recommend(%s): empty", style)
		}
		for _, r := range rec.Recommendations {
			if len(r.ActionItems) == 0 {
				t.Errorf("Recommend(%s): %q has no action items", style, r.Title)
			}
		}
	}
}

func TestRecommendIncludesImbalanceGuidance(t *testing.T) {
	fs := newFakeStore(&store.Family{
		ID:           "fam-1",
		Relationship: &store.RelationshipSurvey{DecisionMaking: "equal"},
	})
	fs.balances = []*store.BalanceResult{{
		FamilyID: "fam-1",
		Overall:  store.OverallBalance{MamaPct: 68, PapaPct: 32, Imbalance: 36},
	}}
	svc := NewService(fs, discardLogger())

	rec, err := svc.Recommend(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	found := false
	for _, r := range rec.Recommendations {
		if r.Title == "Close the Values-Reality Gap" {
			found = true
		}
	}
	if !found {
		t.Errorf("imbalance recommendation missing: %+v", rec.Recommendations)
	}
}
