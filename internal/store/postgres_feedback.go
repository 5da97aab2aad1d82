package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const feedbackColumns = `feedback_id, task_id, family_id, calculated_weight, suggested_weight,
	status, created_at, processed_at`

func (s *PostgresStore) CreateFeedback(ctx context.Context, fb *WeightFeedback) error {
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.Status == "" {
		fb.Status = FeedbackPending
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_weight_feedback (feedback_id, task_id, family_id,
			calculated_weight, suggested_weight, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		fb.ID, fb.TaskID, fb.FamilyID, fb.CalculatedWeight, fb.SuggestedWeight, fb.Status,
	).Scan(&fb.CreatedAt)
}

func (s *PostgresStore) GetPendingFeedback(ctx context.Context, limit int) ([]*WeightFeedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM fairload_weight_feedback
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

func (s *PostgresStore) MarkFeedbackProcessed(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE fairload_weight_feedback SET
			status = 'processed', processed_at = NOW()
		WHERE feedback_id = ANY($1) AND status = 'pending'`, ids)
	return err
}

func (s *PostgresStore) GetFeedbackSince(ctx context.Context, since time.Time) ([]*WeightFeedback, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM fairload_weight_feedback
		WHERE created_at >= $1
		ORDER BY created_at ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

func (s *PostgresStore) GetFeedbackByTask(ctx context.Context, taskID string, limit int) ([]*WeightFeedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM fairload_weight_feedback
		WHERE task_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, taskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

func (s *PostgresStore) GetFeedbackByFamily(ctx context.Context, familyID string, limit int) ([]*WeightFeedback, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+feedbackColumns+`
		FROM fairload_weight_feedback
		WHERE family_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, familyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

func scanFeedback(rows pgx.Rows) ([]*WeightFeedback, error) {
	var items []*WeightFeedback
	for rows.Next() {
		fb := &WeightFeedback{}
		var familyID sql.NullString
		if err := rows.Scan(
			&fb.ID, &fb.TaskID, &familyID, &fb.CalculatedWeight, &fb.SuggestedWeight,
			&fb.Status, &fb.CreatedAt, &fb.ProcessedAt,
		); err != nil {
			return nil, err
		}
		if familyID.Valid {
			fb.FamilyID = familyID.String
		}
		items = append(items, fb)
	}
	return items, rows.Err()
}

func (s *PostgresStore) GetCalcVersions(ctx context.Context) ([]*CalcVersion, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT version, name, features, release_date, deprecation_date, is_default
		FROM fairload_calc_versions
		ORDER BY release_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*CalcVersion
	for rows.Next() {
		v := &CalcVersion{}
		var featuresJSON []byte
		if err := rows.Scan(&v.Version, &v.Name, &featuresJSON, &v.ReleaseDate, &v.DeprecationDate, &v.IsDefault); err != nil {
			return nil, err
		}
		if featuresJSON != nil {
			_ = json.Unmarshal(featuresJSON, &v.Features)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (s *PostgresStore) RegisterCalcVersion(ctx context.Context, v *CalcVersion) error {
	featuresJSON, _ := json.Marshal(v.Features)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO fairload_calc_versions (version, name, features, release_date, deprecation_date, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		v.Version, v.Name, featuresJSON, v.ReleaseDate, v.DeprecationDate, v.IsDefault)
	return err
}

func (s *PostgresStore) GetDefaultCalcVersion(ctx context.Context) (string, error) {
	var version string
	err := s.pool.QueryRow(ctx, `
		SELECT version FROM fairload_calc_versions
		WHERE is_default ORDER BY release_date DESC LIMIT 1`,
	).Scan(&version)
	if err == pgx.ErrNoRows {
		return "", nil
	}
	return version, err
}

func (s *PostgresStore) CreateBalanceResult(ctx context.Context, result *BalanceResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	overallJSON, _ := json.Marshal(result.Overall)
	categoriesJSON, _ := json.Marshal(result.Categories)
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_balance_results (result_id, family_id, overall, categories, unparsed, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		result.ID, result.FamilyID, overallJSON, categoriesJSON, result.Unparsed, result.Version,
	).Scan(&result.CreatedAt)
}

func (s *PostgresStore) GetRecentBalanceResults(ctx context.Context, familyID string, limit int) ([]*BalanceResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx, `
		SELECT result_id, family_id, overall, categories, unparsed, version, created_at
		FROM fairload_balance_results
		WHERE family_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, familyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*BalanceResult
	for rows.Next() {
		r := &BalanceResult{}
		var overallJSON, categoriesJSON []byte
		if err := rows.Scan(&r.ID, &r.FamilyID, &overallJSON, &categoriesJSON, &r.Unparsed, &r.Version, &r.CreatedAt); err != nil {
			return nil, err
		}
		if overallJSON != nil {
			_ = json.Unmarshal(overallJSON, &r.Overall)
		}
		if categoriesJSON != nil {
			_ = json.Unmarshal(categoriesJSON, &r.Categories)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *PostgresStore) CreateAnalysis(ctx context.Context, a *Analysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_analyses (analysis_id, family_id, kind, revision, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		a.ID, a.FamilyID, a.Kind, a.Revision, []byte(a.Payload),
	).Scan(&a.CreatedAt)
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	a := &Analysis{}
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT analysis_id, family_id, kind, revision, payload, created_at
		FROM fairload_analyses WHERE analysis_id = $1`, id,
	).Scan(&a.ID, &a.FamilyID, &a.Kind, &a.Revision, &payload, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Payload = payload
	return a, nil
}

func (s *PostgresStore) GetLatestAnalysis(ctx context.Context, familyID string, kind AnalysisKind) (*Analysis, error) {
	a := &Analysis{}
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT analysis_id, family_id, kind, revision, payload, created_at
		FROM fairload_analyses
		WHERE family_id = $1 AND kind = $2
		ORDER BY created_at DESC LIMIT 1`, familyID, kind,
	).Scan(&a.ID, &a.FamilyID, &a.Kind, &a.Revision, &payload, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Payload = payload
	return a, nil
}

func (s *PostgresStore) CreateLearningEvent(ctx context.Context, event *LearningEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	payloadJSON, _ := json.Marshal(event.Payload)
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_learning_events (event_id, kind, payload)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		event.ID, event.Kind, payloadJSON,
	).Scan(&event.CreatedAt)
}

func (s *PostgresStore) CreateCalcLogEntry(ctx context.Context, entry *CalcLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_calc_log (entry_id, task_id, family_id, weight, version)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		entry.ID, entry.TaskID, entry.FamilyID, entry.Weight, entry.Version,
	).Scan(&entry.CreatedAt)
}

func (s *PostgresStore) GetCalcLog(ctx context.Context, taskID string, limit int) ([]*CalcLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT entry_id, task_id, family_id, weight, version, created_at
		FROM fairload_calc_log
		WHERE task_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, taskID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*CalcLogEntry
	for rows.Next() {
		e := &CalcLogEntry{}
		var familyID sql.NullString
		if err := rows.Scan(&e.ID, &e.TaskID, &familyID, &e.Weight, &e.Version, &e.CreatedAt); err != nil {
			return nil, err
		}
		if familyID.Valid {
			e.FamilyID = familyID.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) CreateBurnoutAssessment(ctx context.Context, a *BurnoutAssessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	scoresJSON, _ := json.Marshal(a.RiskScores)
	signalsJSON, _ := json.Marshal(a.Signals)
	interventionsJSON, _ := json.Marshal(a.Interventions)
	return s.pool.QueryRow(ctx, `
		INSERT INTO fairload_burnout_assessments (assessment_id, family_id, has_risk, risk_level, at_risk_parent, risk_scores, signals, interventions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		a.ID, a.FamilyID, a.HasRisk, a.RiskLevel, a.AtRiskParent, scoresJSON, signalsJSON, interventionsJSON,
	).Scan(&a.CreatedAt)
}

func (s *PostgresStore) GetLatestBurnoutAssessment(ctx context.Context, familyID string) (*BurnoutAssessment, error) {
	assessments, err := s.GetBurnoutHistory(ctx, familyID, 1)
	if err != nil {
		return nil, err
	}
	if len(assessments) == 0 {
		return nil, nil
	}
	return assessments[0], nil
}

func (s *PostgresStore) GetBurnoutHistory(ctx context.Context, familyID string, limit int) ([]*BurnoutAssessment, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, `
		SELECT assessment_id, family_id, has_risk, risk_level, at_risk_parent, risk_scores, signals, interventions, created_at
		FROM fairload_burnout_assessments
		WHERE family_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, familyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []*BurnoutAssessment
	for rows.Next() {
		a := &BurnoutAssessment{}
		var scoresJSON, signalsJSON, interventionsJSON []byte
		if err := rows.Scan(&a.ID, &a.FamilyID, &a.HasRisk, &a.RiskLevel, &a.AtRiskParent, &scoresJSON, &signalsJSON, &interventionsJSON, &a.CreatedAt); err != nil {
			return nil, err
		}
		if scoresJSON != nil {
			_ = json.Unmarshal(scoresJSON, &a.RiskScores)
		}
		if signalsJSON != nil {
			_ = json.Unmarshal(signalsJSON, &a.Signals)
		}
		if interventionsJSON != nil {
			_ = json.Unmarshal(interventionsJSON, &a.Interventions)
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}
