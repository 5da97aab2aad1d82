// seed_tasks.go is a standalone script that seeds the default task
// catalog directly into the database.
//
// Usage:
//
//	go run scripts/seed_tasks.go -database-url postgres://localhost/fairload
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/fairload-app/fairload/internal/store"
)

func catalog() []*store.Task {
	return []*store.Task{
		{ID: "meal-planning", Name: "Meal Planning", Category: "Invisible Household Tasks", Frequency: "daily", Invisibility: "mostly", EmotionalLabor: "moderate", TimeRequired: "moderate", SkillComplexity: "basic", BaseWeight: 3},
		{ID: "grocery-shopping", Name: "Grocery Shopping", Category: "Visible Household Tasks", Frequency: "weekly", Invisibility: "highly", EmotionalLabor: "minimal", TimeRequired: "significant", SkillComplexity: "basic", BaseWeight: 2},
		{ID: "cooking", Name: "Cooking", Category: "Visible Household Tasks", Frequency: "daily", Invisibility: "highly", EmotionalLabor: "minimal", TimeRequired: "significant", SkillComplexity: "moderate", BaseWeight: 3},
		{ID: "cleaning", Name: "Cleaning", Category: "Visible Household Tasks", Frequency: "weekly", Invisibility: "highly", EmotionalLabor: "minimal", TimeRequired: "significant", SkillComplexity: "basic", BaseWeight: 2},
		{ID: "laundry", Name: "Laundry", Category: "Visible Household Tasks", Frequency: "weekly", Invisibility: "partially", EmotionalLabor: "minimal", TimeRequired: "moderate", SkillComplexity: "basic", BaseWeight: 2},
		{ID: "household-budget", Name: "Household Budget", Category: "Financial Tasks", Type: "financial", Frequency: "monthly", Invisibility: "mostly", EmotionalLabor: "moderate", TimeRequired: "moderate", SkillComplexity: "complex", BaseWeight: 3},
		{ID: "bill-payments", Name: "Bill Payments", Category: "Financial Tasks", Type: "financial", Frequency: "monthly", Invisibility: "completely", EmotionalLabor: "moderate", TimeRequired: "short", SkillComplexity: "moderate", BaseWeight: 2},
		{ID: "appointment-scheduling", Name: "Appointment Scheduling", Category: "Administrative Tasks", Frequency: "weekly", Invisibility: "completely", EmotionalLabor: "moderate", TimeRequired: "short", SkillComplexity: "basic", BaseWeight: 3},
		{ID: "paperwork", Name: "Paperwork and Forms", Category: "Administrative Tasks", Frequency: "monthly", Invisibility: "mostly", EmotionalLabor: "moderate", TimeRequired: "moderate", SkillComplexity: "moderate", BaseWeight: 3},
		{ID: "school-runs", Name: "School Runs", Category: "Visible Parental Tasks", Frequency: "daily", Invisibility: "highly", EmotionalLabor: "minimal", TimeRequired: "moderate", SkillComplexity: "basic", ChildRelated: true, BaseWeight: 2},
		{ID: "homework-support", Name: "Homework Support", Category: "Education Support", Frequency: "daily", Invisibility: "partially", EmotionalLabor: "high", TimeRequired: "moderate", SkillComplexity: "moderate", ChildRelated: true, ChildCategory: "education", BaseWeight: 3},
		{ID: "bedtime-routine", Name: "Bedtime Routine", Category: "Visible Parental Tasks", Frequency: "daily", Invisibility: "partially", EmotionalLabor: "high", TimeRequired: "moderate", SkillComplexity: "basic", ChildRelated: true, ChildCategory: "sleep", BaseWeight: 3},
		{ID: "sleep-management", Name: "Sleep Management", Category: "Invisible Parental Tasks", Frequency: "daily", Invisibility: "mostly", EmotionalLabor: "extreme", TimeRequired: "significant", SkillComplexity: "complex", ChildRelated: true, ChildCategory: "sleep", BaseWeight: 4},
		{ID: "developmental-monitoring", Name: "Developmental Monitoring", Category: "Invisible Parental Tasks", Frequency: "weekly", Invisibility: "completely", EmotionalLabor: "high", TimeRequired: "moderate", SkillComplexity: "specialized", ChildRelated: true, ChildCategory: "development", BaseWeight: 4},
		{ID: "emotional-checkins", Name: "Emotional Check-ins", Category: "Emotional Support", Frequency: "daily", Invisibility: "completely", EmotionalLabor: "extreme", TimeRequired: "moderate", SkillComplexity: "complex", BaseWeight: 4},
		{ID: "conflict-mediation", Name: "Conflict Mediation", Category: "Emotional Support", Frequency: "weekly", Invisibility: "mostly", EmotionalLabor: "extreme", TimeRequired: "moderate", SkillComplexity: "complex", BaseWeight: 4},
		{ID: "medical-appointments", Name: "Medical Appointments", Category: "Healthcare Management", Frequency: "monthly", Invisibility: "partially", EmotionalLabor: "high", TimeRequired: "significant", SkillComplexity: "moderate", BaseWeight: 3},
		{ID: "medication-tracking", Name: "Medication Tracking", Category: "Healthcare Management", Frequency: "daily", Invisibility: "completely", EmotionalLabor: "high", TimeRequired: "short", SkillComplexity: "moderate", BaseWeight: 3},
		{ID: "playdate-coordination", Name: "Playdate Coordination", Category: "Social Management", Frequency: "weekly", Invisibility: "mostly", EmotionalLabor: "moderate", TimeRequired: "moderate", SkillComplexity: "basic", ChildRelated: true, ChildCategory: "socialization", BaseWeight: 2},
		{ID: "family-calendar", Name: "Family Calendar Management", Category: "Social Management", Frequency: "daily", Invisibility: "completely", EmotionalLabor: "moderate", TimeRequired: "short", SkillComplexity: "moderate", BaseWeight: 3},
		{ID: "gift-planning", Name: "Gift Planning", Category: "Social Management", Frequency: "monthly", Invisibility: "completely", EmotionalLabor: "moderate", TimeRequired: "moderate", SkillComplexity: "basic", Seasonal: true, RelevantSeason: "winter", BaseWeight: 2},
		{ID: "holiday-preparation", Name: "Holiday Preparation", Category: "Invisible Household Tasks", Frequency: "monthly", Invisibility: "mostly", EmotionalLabor: "high", TimeRequired: "extended", SkillComplexity: "moderate", Seasonal: true, RelevantSeason: "summer", BaseWeight: 3},
	}
}

func main() {
	databaseURL := flag.String("database-url", os.Getenv("FAIRLOAD_DATABASE_URL"), "Postgres connection string")
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("database URL required: pass -database-url or set FAIRLOAD_DATABASE_URL")
	}

	ctx := context.Background()
	db, err := store.NewPostgresStore(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	seeded, skipped := 0, 0
	for _, task := range catalog() {
		existing, err := db.GetTask(ctx, task.ID)
		if err != nil {
			log.Fatalf("check task %s: %v", task.ID, err)
		}
		if existing != nil {
			skipped++
			continue
		}
		if err := db.CreateTask(ctx, task); err != nil {
			log.Fatalf("create task %s: %v", task.ID, err)
		}
		log.Printf("seeded %s (%s)", task.ID, task.Category)
		seeded++
	}

	log.Printf("done: %d seeded, %d already present", seeded, skipped)
}
