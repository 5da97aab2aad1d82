package lifestage

import (
	"context"
	"encoding/json"
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

func TestStageFor(t *testing.T) {
	tests := []struct {
		age  float64
		want string
	}{
		{-1, StageUnknown},
		{0, StageInfant},
		{1.99, StageInfant},
		{2, StageToddler},
		{4.99, StageToddler},
		{5, StagePreschool},
		{7, StageSchoolAge},
		{12.99, StageSchoolAge},
		{13, StageTeen},
		{18.99, StageTeen},
		{19, StageYoungAdult},
		{25, StageAdult},
		{40, StageAdult},
	}
	for _, tt := range tests {
		if got, _ := StageFor(tt.age); got != tt.want {
			t.Errorf("StageFor(%v) = %s, want %s", tt.age, got, tt.want)
		}
	}
}

func TestIdentifyTransitions(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		children []store.Child
		want     []string
	}{
		{"newborn", []store.Child{{Age: 0.1}}, []string{TransitionNewborn}},
		{"newborn upper bound excluded", []store.Child{{Age: 0.25}}, nil},
		{"childcare", []store.Child{{Age: 2.3}}, []string{TransitionChildcare}},
		{"school", []store.Child{{Age: 5.2}}, []string{TransitionSchool}},
		{"middle school", []store.Child{{Age: 11.5}}, []string{TransitionMiddleSchool}},
		{"high school", []store.Child{{Age: 14.1}}, []string{TransitionHighSchool}},
		{"college", []store.Child{{Age: 18.2}}, []string{TransitionCollege}},
		{"outside all windows", []store.Child{{Age: 8}}, nil},
		{"multiple children", []store.Child{{Age: 0.1}, {Age: 5.1}}, []string{TransitionNewborn, TransitionSchool}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyTransitions(tt.children, now)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transitions %+v, want %d", len(got), got, len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].Type != w {
					t.Errorf("transition[%d] = %s, want %s", i, got[i].Type, w)
				}
			}
		})
	}
}

func TestIdentifyTransitionsEmptyNest(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, -2, 0)
	old := now.AddDate(-1, 0, 0)

	tests := []struct {
		name     string
		children []store.Child
		want     bool
	}{
		{"recent move-out, all adult", []store.Child{{Age: 20, MovedOutAt: &recent}, {Age: 23}}, true},
		{"move-out too long ago", []store.Child{{Age: 20, MovedOutAt: &old}}, false},
		{"minor still at home", []store.Child{{Age: 20, MovedOutAt: &recent}, {Age: 15}}, false},
		{"no children", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyTransitions(tt.children, now)
			found := false
			for _, tr := range got {
				if tr.Type == TransitionEmptyNest {
					found = true
				}
			}
			if found != tt.want {
				t.Errorf("empty nest = %v, want %v (transitions %+v)", found, tt.want, got)
			}
		})
	}
}

func TestComputeAdjustmentsMostImpactfulWins(t *testing.T) {
	stages := []ChildStage{
		{Name: "Ada", Stage: StageInfant},
		{Name: "Ben", Stage: StageTeen},
	}
	adj := ComputeAdjustments(stages, nil)

	// Social Activities: infant 0.7 vs teen 1.2 -> 0.7 is farther from 1.0.
	sa := adj.Tasks["Social Activities"]
	if sa.Multiplier != 0.7 {
		t.Errorf("Social Activities multiplier = %v, want 0.7", sa.Multiplier)
	}
	if len(sa.Contributors) != 2 {
		t.Errorf("contributors = %d, want 2", len(sa.Contributors))
	}

	// Household Management: infant 1.3 vs teen 1.0 -> 1.3 wins.
	if hm := adj.Tasks["Household Management"]; hm.Multiplier != 1.3 {
		t.Errorf("Household Management multiplier = %v, want 1.3", hm.Multiplier)
	}
}

func TestComputeAdjustmentsTransitionDominates(t *testing.T) {
	stages := []ChildStage{{Name: "Ada", Stage: StageInfant}}
	transitions := []Transition{{Type: TransitionNewborn, ChildName: "Ada"}}
	adj := ComputeAdjustments(stages, transitions)

	// Sleep Management: stage 1.5 vs newborn transition 1.8.
	if sm := adj.Tasks["Sleep Management"]; sm.Multiplier != 1.8 {
		t.Errorf("Sleep Management multiplier = %v, want 1.8", sm.Multiplier)
	}
	if got := adj.Categories["Invisible Parental Tasks"]; got != 1.5 {
		t.Errorf("Invisible Parental Tasks = %v, want newborn 1.5", got)
	}
}

func TestApply(t *testing.T) {
	adj := &Adjustments{
		Tasks: map[string]TaskMultiplier{
			"Feeding": {Multiplier: 1.5},
		},
		Categories: map[string]float64{
			"Education Support": 1.3,
		},
	}

	task := &store.Task{Name: "Feeding", Category: "Education Support", BaseWeight: 2}
	adjusted, adaptation := Apply(task, adj)
	if adjusted.BaseWeight != 3 {
		t.Errorf("base weight = %v, want 3", adjusted.BaseWeight)
	}
	if adaptation == nil || adaptation.Type != "life_stage" {
		t.Fatalf("adaptation = %+v, want life_stage", adaptation)
	}
	if task.BaseWeight != 2 {
		t.Error("input task mutated")
	}

	// No task match, category fallback fires.
	homework := &store.Task{Name: "Homework Help", Category: "Education Support", BaseWeight: 2}
	adjusted, adaptation = Apply(homework, adj)
	if adaptation == nil || adaptation.Type != "category_life_stage" {
		t.Fatalf("adaptation = %+v, want category_life_stage", adaptation)
	}
	if adjusted.BaseWeight != 2*1.3 {
		t.Errorf("base weight = %v, want %v", adjusted.BaseWeight, 2*1.3)
	}

	// Neither matches.
	other := &store.Task{Name: "Laundry", Category: "Visible Household Tasks", BaseWeight: 2}
	if _, adaptation = Apply(other, adj); adaptation != nil {
		t.Errorf("expected no adaptation, got %+v", adaptation)
	}

	// Default base weight of 3 when unset.
	unset := &store.Task{Name: "Feeding"}
	adjusted, _ = Apply(unset, adj)
	if adjusted.BaseWeight != 3*1.5 {
		t.Errorf("default base weight = %v, want %v", adjusted.BaseWeight, 3*1.5)
	}
}

func TestRelevantTasksRankedDescending(t *testing.T) {
	tasks := RelevantTasks(StageInfant)
	if len(tasks) == 0 {
		t.Fatal("no relevant tasks for infant stage")
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Importance > tasks[i-1].Importance {
			t.Fatalf("tasks not sorted: %+v", tasks)
		}
	}
	for _, rt := range tasks {
		if rt.Importance <= 1.1 {
			t.Errorf("task %s importance %v below threshold", rt.Task, rt.Importance)
		}
	}
}

// fakeStore stubs the store methods the service touches.
type fakeStore struct {
	store.Store

	family   *store.Family
	analyses map[uuid.UUID]*store.Analysis
	latest   *store.Analysis
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
	return f.latest, nil
}

func (f *fakeStore) SetAnalysisPointer(ctx context.Context, familyID string, kind store.AnalysisKind, id uuid.UUID) error {
	f.pointers[kind] = id
	return nil
}

func TestAnalyzeMissingFamily(t *testing.T) {
	svc := NewService(newFakeStore(nil), discardLogger())
	if _, err := svc.Analyze(context.Background(), "nope"); err == nil {
		t.Error("expected family not found error")
	}
}

func TestAnalyzePersistsAndPoints(t *testing.T) {
	fs := newFakeStore(&store.Family{
		ID:       "fam-1",
		Children: []store.Child{{Name: "Ada", Age: 1.5}, {Name: "Ben", Age: 8}},
	})
	svc := NewService(fs, discardLogger())

	analysis, err := svc.Analyze(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !analysis.HasChildren || analysis.ChildCount != 2 {
		t.Errorf("analysis = %+v", analysis)
	}
	if got := analysis.StageNames(); len(got) != 2 {
		t.Errorf("stage names = %v", got)
	}
	if len(fs.created) != 1 {
		t.Fatalf("analyses created = %d, want 1", len(fs.created))
	}
	if _, ok := fs.pointers[store.AnalysisLifeStage]; !ok {
		t.Error("cache pointer not written")
	}
}

func TestLatestPrefersCachePointer(t *testing.T) {
	cached := &Analysis{FamilyID: "fam-1", HasChildren: true, ChildCount: 7}
	payload, _ := json.Marshal(cached)

	fs := newFakeStore(&store.Family{ID: "fam-1"})
	id := uuid.New()
	fs.analyses[id] = &store.Analysis{ID: id, FamilyID: "fam-1", Kind: store.AnalysisLifeStage, Payload: payload}
	fs.family.AnalysisPointers = map[store.AnalysisKind]uuid.UUID{store.AnalysisLifeStage: id}

	svc := NewService(fs, discardLogger())
	got, err := svc.Latest(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.ChildCount != 7 {
		t.Errorf("got %+v, want cached analysis", got)
	}
	if len(fs.created) != 0 {
		t.Error("cached hit should not recompute")
	}
}

func TestLatestRecomputesWhenPointerStale(t *testing.T) {
	fs := newFakeStore(&store.Family{
		ID:               "fam-1",
		Children:         []store.Child{{Name: "Ada", Age: 3}},
		AnalysisPointers: map[store.AnalysisKind]uuid.UUID{store.AnalysisLifeStage: uuid.New()},
	})
	svc := NewService(fs, discardLogger())

	got, err := svc.Latest(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if !got.HasChildren {
		t.Errorf("got %+v, want fresh analysis", got)
	}
	if len(fs.created) != 1 {
		t.Error("stale pointer should trigger recompute")
	}
}

func TestRecommendNoChildren(t *testing.T) {
	fs := newFakeStore(&store.Family{ID: "fam-1"})
	svc := NewService(fs, discardLogger())

	rec, err := svc.Recommend(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.HasRecommendations {
		t.Errorf("expected no recommendations, got %+v", rec)
	}
}

func TestRecommendWithChildrenAndTransitions(t *testing.T) {
	fs := newFakeStore(&store.Family{
		ID:       "fam-1",
		Children: []store.Child{{Name: "Ada", Age: 0.1}, {Name: "Ben", Age: 14.2}},
	})
	svc := NewService(fs, discardLogger())

	rec, err := svc.Recommend(context.Background(), "fam-1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !rec.HasRecommendations {
		t.Fatal("expected recommendations")
	}
	if len(rec.PerChild) != 2 {
		t.Errorf("per-child recs = %d, want 2", len(rec.PerChild))
	}
	if len(rec.PerTransition) != 2 {
		t.Errorf("per-transition recs = %d, want 2 (newborn + high school)", len(rec.PerTransition))
	}
	for _, c := range rec.PerChild {
		if len(c.RelevantTasks) > maxRankedTasks {
			t.Errorf("relevant tasks capped at %d, got %d", maxRankedTasks, len(c.RelevantTasks))
		}
	}
	if len(rec.Resources) == 0 {
		t.Error("expected resource recommendations")
	}
}
