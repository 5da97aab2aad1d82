package main

import (
	"math"
	"testing"
	"time"

	"github.com/fairload-app/fairload/internal/store"
	"github.com/fairload-app/fairload/internal/weights"
)

// The calculator treats unknown enum values as neutral 1.0, so a typo in
// the catalog silently flattens a task's weight instead of failing. These
// sets mirror the calculator's multiplier tables.
var catalogVocabulary = map[string]map[string]bool{
	"frequency":        set("daily", "several", "weekly", "monthly", "quarterly", "yearly", "seasonal"),
	"invisibility":     set("highly", "partially", "mostly", "completely"),
	"emotional_labor":  set("minimal", "low", "moderate", "high", "extreme"),
	"time_required":    set("minimal", "short", "moderate", "extended", "significant"),
	"skill_complexity": set("simple", "basic", "moderate", "complex", "specialized"),
	"child_category": set("feeding", "sleep", "health", "development", "safety",
		"socialization", "education", "emotional", "independence", "activities",
		"friends", "guidance", "academic", "general"),
}

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}

func TestCatalogUsesCalculatorVocabulary(t *testing.T) {
	for _, task := range catalog() {
		if !catalogVocabulary["frequency"][task.Frequency] {
			t.Errorf("%s: unknown frequency %q", task.ID, task.Frequency)
		}
		if !catalogVocabulary["invisibility"][task.Invisibility] {
			t.Errorf("%s: unknown invisibility %q", task.ID, task.Invisibility)
		}
		if !catalogVocabulary["emotional_labor"][task.EmotionalLabor] {
			t.Errorf("%s: unknown emotional labor %q", task.ID, task.EmotionalLabor)
		}
		if !catalogVocabulary["time_required"][task.TimeRequired] {
			t.Errorf("%s: unknown time required %q", task.ID, task.TimeRequired)
		}
		if !catalogVocabulary["skill_complexity"][task.SkillComplexity] {
			t.Errorf("%s: unknown skill complexity %q", task.ID, task.SkillComplexity)
		}
		if task.ChildCategory != "" && !catalogVocabulary["child_category"][task.ChildCategory] {
			t.Errorf("%s: unknown child category %q", task.ID, task.ChildCategory)
		}
		if _, ok := weights.CategoryWeights[task.Category]; !ok {
			t.Errorf("%s: unknown category %q", task.ID, task.Category)
		}
	}
}

func TestCatalogEnumsMoveWeights(t *testing.T) {
	var sleep *store.Task
	for _, task := range catalog() {
		if task.ID == "sleep-management" {
			sleep = task
		}
	}
	if sleep == nil {
		t.Fatal("sleep-management missing from catalog")
	}

	// 4 base x 1.5 daily x 1.35 mostly x 1.4 extreme x 1.4 significant
	// x 1.2 complex
	got := weights.CalculateV2(sleep, nil, nil, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if math.Abs(got-19.0512) > 1e-9 {
		t.Errorf("sleep-management weight = %v, want 19.0512", got)
	}
}
