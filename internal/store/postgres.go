package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const taskColumns = `task_id, name, title, category, task_type,
	frequency, invisibility, emotional_labor, research_impact, child_development,
	time_required, skill_complexity,
	seasonal, relevant_season, child_related, child_category, cultural_category,
	base_weight, adjustment_history, created_at, updated_at`

func (s *PostgresStore) CreateTask(ctx context.Context, task *Task) error {
	historyJSON, _ := json.Marshal(task.AdjustmentHistory)
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_tasks (task_id, name, title, category, task_type,
			frequency, invisibility, emotional_labor, research_impact, child_development,
			time_required, skill_complexity,
			seasonal, relevant_season, child_related, child_category, cultural_category,
			base_weight, adjustment_history)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING created_at, updated_at`,
		task.ID, task.Name, task.Title, task.Category, task.Type,
		task.Frequency, task.Invisibility, task.EmotionalLabor, task.ResearchImpact, task.ChildDevelopment,
		task.TimeRequired, task.SkillComplexity,
		task.Seasonal, task.RelevantSeason, task.ChildRelated, task.ChildCategory, task.CulturalCategory,
		task.BaseWeight, historyJSON,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (s *PostgresStore) GetTask(ctx context.Context, id string) (*Task, error) {
	t := &Task{}
	var historyJSON []byte
	var title, taskType sql.NullString
	err := s.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM fairload_tasks WHERE task_id = $1`, id,
	).Scan(
		&t.ID, &t.Name, &title, &t.Category, &taskType,
		&t.Frequency, &t.Invisibility, &t.EmotionalLabor, &t.ResearchImpact, &t.ChildDevelopment,
		&t.TimeRequired, &t.SkillComplexity,
		&t.Seasonal, &t.RelevantSeason, &t.ChildRelated, &t.ChildCategory, &t.CulturalCategory,
		&t.BaseWeight, &historyJSON, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if title.Valid {
		t.Title = title.String
	}
	if taskType.Valid {
		t.Type = taskType.String
	}
	if historyJSON != nil {
		_ = json.Unmarshal(historyJSON, &t.AdjustmentHistory)
	}
	return t, nil
}

// UpdateTaskWeight sets the task's base weight and appends one history
// entry in a single statement, relying on per-row atomicity.
func (s *PostgresStore) UpdateTaskWeight(ctx context.Context, id string, baseWeight float64, entry WeightAdjustment) error {
	entryJSON, _ := json.Marshal(entry)
	tag, err := s.pool.Exec(ctx, `
		UPDATE fairload_tasks SET
			base_weight = $2,
			adjustment_history = COALESCE(adjustment_history, '[]'::jsonb) || $3::jsonb,
			updated_at = NOW()
		WHERE task_id = $1`,
		id, baseWeight, entryJSON,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

func (s *PostgresStore) CreateFamily(ctx context.Context, family *Family) error {
	childrenJSON, _ := json.Marshal(family.Children)
	demoJSON, _ := json.Marshal(family.Demographics)
	prefsJSON, _ := json.Marshal(family.CulturalPrefs)
	valuesJSON, _ := json.Marshal(family.CulturalValues)
	relJSON, _ := json.Marshal(family.Relationship)
	laborJSON, _ := json.Marshal(family.Labor)
	pointersJSON, _ := json.Marshal(family.AnalysisPointers)

	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_families (family_id, name, family_type, cultural_context,
			children, demographics, cultural_preferences, cultural_values,
			relationship_survey, labor_survey, analysis_pointers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		family.ID, family.Name, family.FamilyType, family.CulturalContext,
		childrenJSON, demoJSON, prefsJSON, valuesJSON,
		relJSON, laborJSON, pointersJSON,
	).Scan(&family.CreatedAt, &family.UpdatedAt)
}

func (s *PostgresStore) GetFamily(ctx context.Context, id string) (*Family, error) {
	f := &Family{}
	var childrenJSON, demoJSON, prefsJSON, valuesJSON, relJSON, laborJSON, pointersJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT family_id, name, family_type, cultural_context,
			children, demographics, cultural_preferences, cultural_values,
			relationship_survey, labor_survey, analysis_pointers,
			created_at, updated_at
		FROM fairload_families WHERE family_id = $1`, id,
	).Scan(
		&f.ID, &f.Name, &f.FamilyType, &f.CulturalContext,
		&childrenJSON, &demoJSON, &prefsJSON, &valuesJSON,
		&relJSON, &laborJSON, &pointersJSON,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if childrenJSON != nil {
		_ = json.Unmarshal(childrenJSON, &f.Children)
	}
	if demoJSON != nil {
		_ = json.Unmarshal(demoJSON, &f.Demographics)
	}
	if prefsJSON != nil {
		_ = json.Unmarshal(prefsJSON, &f.CulturalPrefs)
	}
	if valuesJSON != nil {
		_ = json.Unmarshal(valuesJSON, &f.CulturalValues)
	}
	if relJSON != nil {
		_ = json.Unmarshal(relJSON, &f.Relationship)
	}
	if laborJSON != nil {
		_ = json.Unmarshal(laborJSON, &f.Labor)
	}
	if pointersJSON != nil {
		_ = json.Unmarshal(pointersJSON, &f.AnalysisPointers)
	}
	return f, nil
}

func (s *PostgresStore) SetAnalysisPointer(ctx context.Context, familyID string, kind AnalysisKind, analysisID uuid.UUID) error {
	pointerJSON, _ := json.Marshal(map[AnalysisKind]uuid.UUID{kind: analysisID})
	tag, err := s.pool.Exec(ctx, `
		UPDATE fairload_families SET
			analysis_pointers = COALESCE(analysis_pointers, '{}'::jsonb) || $2::jsonb,
			updated_at = NOW()
		WHERE family_id = $1`,
		familyID, pointerJSON,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("family %s not found", familyID)
	}
	return nil
}

func (s *PostgresStore) GetWeightProfile(ctx context.Context, familyID string) (*WeightProfile, error) {
	p := &WeightProfile{FamilyID: familyID}
	var taskJSON, categoryJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT task_adjustments, category_adjustments, version, created_at, updated_at
		FROM fairload_weight_profiles WHERE family_id = $1`, familyID,
	).Scan(&taskJSON, &categoryJSON, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if taskJSON != nil {
		_ = json.Unmarshal(taskJSON, &p.TaskAdjustments)
	}
	if categoryJSON != nil {
		_ = json.Unmarshal(categoryJSON, &p.CategoryAdjustments)
	}
	if p.TaskAdjustments == nil {
		p.TaskAdjustments = map[string]TaskAdjustment{}
	}
	if p.CategoryAdjustments == nil {
		p.CategoryAdjustments = map[string]CategoryAdjustment{}
	}
	return p, nil
}

func (s *PostgresStore) SaveWeightProfile(ctx context.Context, profile *WeightProfile) error {
	taskJSON, _ := json.Marshal(profile.TaskAdjustments)
	categoryJSON, _ := json.Marshal(profile.CategoryAdjustments)
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_weight_profiles (family_id, task_adjustments, category_adjustments, version)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (family_id) DO UPDATE SET
			task_adjustments = EXCLUDED.task_adjustments,
			category_adjustments = EXCLUDED.category_adjustments,
			version = EXCLUDED.version,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		profile.FamilyID, taskJSON, categoryJSON, profile.Version,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}
