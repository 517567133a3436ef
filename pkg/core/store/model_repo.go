package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// ModelRepo stores assumption sets per project.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS forecast_models (
//   id TEXT PRIMARY KEY,
//   project_id TEXT NOT NULL,
//   name TEXT,
//   model_json JSONB,
//   updated_at TIMESTAMPTZ
// );
type ModelRepo struct{}

// NewModelRepo creates a new repository instance.
func NewModelRepo() *ModelRepo {
	return &ModelRepo{}
}

// Save persists an assumption set and returns its ID, minting one for new
// models. A single JSONB blob keeps the schema stable while the assumption
// shape evolves with the dashboard.
func (r *ModelRepo) Save(ctx context.Context, id string, a *model.AssumptionSet) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}
	if a == nil {
		return "", fmt.Errorf("nil assumption set")
	}
	if id == "" {
		id = uuid.New().String()
	}

	jsonData, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to marshal model: %w", err)
	}

	query := `
		INSERT INTO forecast_models (id, project_id, name, model_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			project_id = EXCLUDED.project_id,
			name = EXCLUDED.name,
			model_json = EXCLUDED.model_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, id, a.ProjectID, a.Name, jsonData, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save model: %w", err)
	}
	return id, nil
}

// Load retrieves one assumption set by ID.
func (r *ModelRepo) Load(ctx context.Context, id string) (*model.AssumptionSet, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT model_json FROM forecast_models WHERE id = $1`, id).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no model found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	var a model.AssumptionSet
	if err := json.Unmarshal(jsonData, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	return &a, nil
}

// ListByProject returns all assumption sets recorded for a project.
func (r *ModelRepo) ListByProject(ctx context.Context, projectID string) ([]*model.AssumptionSet, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx,
		`SELECT model_json FROM forecast_models WHERE project_id = $1 ORDER BY updated_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var out []*model.AssumptionSet
	for rows.Next() {
		var jsonData []byte
		if err := rows.Scan(&jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan model row: %w", err)
		}
		var a model.AssumptionSet
		if err := json.Unmarshal(jsonData, &a); err != nil {
			return nil, fmt.Errorf("failed to unmarshal model: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
