package weights

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/version"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCalculator() *Calculator {
	return NewCalculator(version.NewRegistry(nil, discardLogger()), discardLogger())
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateV1NeutralDefaults(t *testing.T) {
	tests := []struct {
		name string
		task store.Task
		want float64
	}{
		{"no enum fields", store.Task{BaseWeight: 3}, 3},
		{"unrecognized enums", store.Task{BaseWeight: 4, Frequency: "hourly", Invisibility: "sometimes", EmotionalLabor: "huge"}, 4},
		{"zero base weight defaults to 3", store.Task{}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateV1(&tt.task, nil)
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateV1() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateV1KnownMultipliers(t *testing.T) {
	task := &store.Task{
		BaseWeight:     3,
		Frequency:      "daily",
		Invisibility:   "mostly",
		EmotionalLabor: "high",
	}
	got := CalculateV1(task, nil)
	want := 3 * 1.5 * 1.35 * 1.3
	if !almostEqual(got, want) {
		t.Errorf("CalculateV1() = %v, want %v", got, want)
	}
}

func TestPriorityMultiplier(t *testing.T) {
	priorities := &Priorities{
		Highest:   "Invisible Parental Tasks",
		Secondary: "Financial Tasks",
		Tertiary:  "Social Management",
	}
	tests := []struct {
		category string
		want     float64
	}{
		{"Invisible Parental Tasks", 1.5},
		{"Financial Tasks", 1.3},
		{"Social Management", 1.1},
		{"Visible Household Tasks", 1.0},
	}
	for _, tt := range tests {
		task := &store.Task{BaseWeight: 1, Category: tt.category}
		if got := CalculateV1(task, priorities); !almostEqual(got, tt.want) {
			t.Errorf("category %s: got %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestCalculateV2ExtendsV1(t *testing.T) {
	task := &store.Task{
		BaseWeight:      3,
		Frequency:       "daily",
		EmotionalLabor:  "high",
		TimeRequired:    "significant",
		SkillComplexity: "complex",
	}
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	got := CalculateV2(task, nil, nil, now)
	want := CalculateV1(task, nil) * 1.4 * 1.2
	if !almostEqual(got, want) {
		t.Errorf("CalculateV2() = %v, want V1 x time x complexity = %v", got, want)
	}
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.March, "spring"},
		{time.May, "spring"},
		{time.June, "summer"},
		{time.August, "summer"},
		{time.September, "fall"},
		{time.November, "fall"},
		{time.December, "winter"},
	}
	for _, tt := range tests {
		if got := SeasonFor(time.Date(2026, tt.month, 10, 0, 0, 0, 0, time.UTC)); got != tt.want {
			t.Errorf("SeasonFor(%v) = %s, want %s", tt.month, got, tt.want)
		}
	}
}

func TestCalculateV2Seasonal(t *testing.T) {
	task := &store.Task{BaseWeight: 2, Seasonal: true, RelevantSeason: "summer"}
	july := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	january := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	if got := CalculateV2(task, nil, nil, july); !almostEqual(got, 2*1.3) {
		t.Errorf("in-season weight = %v, want %v", got, 2*1.3)
	}
	if got := CalculateV2(task, nil, nil, january); !almostEqual(got, 2*0.7) {
		t.Errorf("out-of-season weight = %v, want %v", got, 2*0.7)
	}
}

func TestCalculateV2ProfileOverrides(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	task := &store.Task{ID: "meal-planning", Type: "planning", BaseWeight: 2}

	tests := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{
			"task id match",
			Profile{TaskOverrides: []TaskOverride{{TaskID: "meal-planning", Multiplier: 1.2}}},
			2 * 1.2,
		},
		{
			"task type match",
			Profile{TaskOverrides: []TaskOverride{{TaskType: "planning", Multiplier: 0.8}}},
			2 * 0.8,
		},
		{
			"first match wins",
			Profile{TaskOverrides: []TaskOverride{
				{TaskID: "meal-planning", Multiplier: 1.5},
				{TaskType: "planning", Multiplier: 0.5},
			}},
			2 * 1.5,
		},
		{
			"no match",
			Profile{TaskOverrides: []TaskOverride{{TaskID: "other", Multiplier: 2}}},
			2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateV2(task, nil, &tt.profile, now); !almostEqual(got, tt.want) {
				t.Errorf("CalculateV2() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateV2LifeStageMaxAcrossChildren(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	task := &store.Task{ID: "feeding", BaseWeight: 2, ChildRelated: true, ChildCategory: "feeding"}
	profile := &Profile{ChildStages: []string{"toddler", "infant"}}

	// infant feeding 1.4 beats toddler feeding 1.2
	if got := CalculateV2(task, nil, profile, now); !almostEqual(got, 2*1.4) {
		t.Errorf("CalculateV2() = %v, want %v", got, 2*1.4)
	}

	general := &store.Task{ID: "play", BaseWeight: 2, ChildRelated: true}
	if got := CalculateV2(general, nil, profile, now); !almostEqual(got, 2) {
		t.Errorf("unmapped child category should be neutral, got %v", got)
	}
}

func TestCalculateV2CulturalContext(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	task := &store.Task{ID: "grandma-visit", BaseWeight: 2, CulturalCategory: "elder_care"}
	profile := &Profile{CulturalContext: "collectivist"}

	if got := CalculateV2(task, nil, profile, now); !almostEqual(got, 2*1.2) {
		t.Errorf("CalculateV2() = %v, want %v", got, 2*1.2)
	}
}

func TestCalculateVersionDispatch(t *testing.T) {
	calc := testCalculator()
	ctx := context.Background()
	task := &store.Task{
		ID:             "laundry",
		BaseWeight:     3,
		Frequency:      "daily",
		Invisibility:   "mostly",
		EmotionalLabor: "high",
	}

	v1, err := calc.Calculate(ctx, task, nil, nil, "1.0")
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if v1.Weight != 7.9 {
		t.Errorf("v1 weight = %v, want 7.90", v1.Weight)
	}
	if v1.Version != "1.0" {
		t.Errorf("v1 version = %s, want 1.0", v1.Version)
	}
	if v1.Factors.BaseWeight != 3 || v1.Factors.Frequency != "daily" {
		t.Errorf("factors not echoed: %+v", v1.Factors)
	}

	latest, err := calc.Calculate(ctx, task, nil, nil, "latest")
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if latest.Version != "2.0" {
		t.Errorf("latest resolved to %s, want 2.0", latest.Version)
	}

	// Unknown versions deliberately fall back to the V2 algorithm.
	unknown, err := calc.Calculate(ctx, task, nil, nil, "9.9")
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if unknown.Version != "9.9" {
		t.Errorf("unknown version echo = %s, want 9.9", unknown.Version)
	}
	if unknown.Weight != latest.Weight {
		t.Errorf("unknown version weight = %v, want V2 result %v", unknown.Weight, latest.Weight)
	}
}

func TestCalculateNilTask(t *testing.T) {
	if _, err := testCalculator().Calculate(context.Background(), nil, nil, nil, "1.0"); err == nil {
		t.Error("expected error for nil task")
	}
}
