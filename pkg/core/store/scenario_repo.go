package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/scenario"
)

// SavedScenario is a named delta set kept per project. Deltas are re-applied
// to the current baseline on load, never to a previously computed result.
type SavedScenario struct {
	ID        string                   `json:"id"`
	ProjectID string                   `json:"project_id"`
	Name      string                   `json:"name"`
	Deltas    scenario.ParameterDeltas `json:"deltas"`
}

// ScenarioRepo stores saved what-if scenarios.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS saved_scenarios (
//   id TEXT PRIMARY KEY,
//   project_id TEXT NOT NULL,
//   name TEXT,
//   deltas_json JSONB,
//   updated_at TIMESTAMPTZ
// );
type ScenarioRepo struct{}

// NewScenarioRepo creates a new repository instance.
func NewScenarioRepo() *ScenarioRepo {
	return &ScenarioRepo{}
}

// Save persists a scenario, minting an ID for new ones.
func (r *ScenarioRepo) Save(ctx context.Context, sc *SavedScenario) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}
	if sc.ID == "" {
		sc.ID = uuid.New().String()
	}

	jsonData, err := json.Marshal(sc.Deltas)
	if err != nil {
		return "", fmt.Errorf("failed to marshal deltas: %w", err)
	}

	query := `
		INSERT INTO saved_scenarios (id, project_id, name, deltas_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			project_id = EXCLUDED.project_id,
			name = EXCLUDED.name,
			deltas_json = EXCLUDED.deltas_json,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, sc.ID, sc.ProjectID, sc.Name, jsonData, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save scenario: %w", err)
	}
	return sc.ID, nil
}

// Load retrieves one saved scenario by ID.
func (r *ScenarioRepo) Load(ctx context.Context, id string) (*SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	sc := &SavedScenario{ID: id}
	var jsonData []byte
	err := pool.QueryRow(ctx,
		`SELECT project_id, name, deltas_json FROM saved_scenarios WHERE id = $1`, id).
		Scan(&sc.ProjectID, &sc.Name, &jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no scenario found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	if err := json.Unmarshal(jsonData, &sc.Deltas); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deltas: %w", err)
	}
	return sc, nil
}

// ListByProject returns all saved scenarios for a project.
func (r *ScenarioRepo) ListByProject(ctx context.Context, projectID string) ([]*SavedScenario, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT id, project_id, name, deltas_json
		FROM saved_scenarios
		WHERE project_id = $1
		ORDER BY updated_at DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var out []*SavedScenario
	for rows.Next() {
		sc := &SavedScenario{}
		var jsonData []byte
		if err := rows.Scan(&sc.ID, &sc.ProjectID, &sc.Name, &jsonData); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		if err := json.Unmarshal(jsonData, &sc.Deltas); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deltas: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
