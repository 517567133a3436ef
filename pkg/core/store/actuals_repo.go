package store

import (
	"context"
	"fmt"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

// ActualsRepo stores recorded period results, one row per reported period.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS period_actuals (
//   project_id TEXT NOT NULL,
//   period INT NOT NULL,
//   revenue DOUBLE PRECISION NOT NULL,
//   cost DOUBLE PRECISION NOT NULL,
//   profit DOUBLE PRECISION NOT NULL,
//   attendance DOUBLE PRECISION,
//   PRIMARY KEY (project_id, period)
// );
type ActualsRepo struct{}

// NewActualsRepo creates a new repository instance.
func NewActualsRepo() *ActualsRepo {
	return &ActualsRepo{}
}

// Upsert records one period's actual results, replacing any prior entry for
// the same project and period.
func (r *ActualsRepo) Upsert(ctx context.Context, entry model.ActualsEntry) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	query := `
		INSERT INTO period_actuals (project_id, period, revenue, cost, profit, attendance)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id, period)
		DO UPDATE SET
			revenue = EXCLUDED.revenue,
			cost = EXCLUDED.cost,
			profit = EXCLUDED.profit,
			attendance = EXCLUDED.attendance;
	`
	_, err := pool.Exec(ctx, query,
		entry.ProjectID, entry.Period, entry.Revenue, entry.Cost, entry.Profit, entry.Attendance)
	if err != nil {
		return fmt.Errorf("failed to save actuals for period %d: %w", entry.Period, err)
	}
	return nil
}

// LoadByProject returns all recorded actuals for a project, ordered by
// period. Periods without a row are simply "not yet actualized".
func (r *ActualsRepo) LoadByProject(ctx context.Context, projectID string) ([]model.ActualsEntry, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	rows, err := pool.Query(ctx, `
		SELECT project_id, period, revenue, cost, profit, attendance
		FROM period_actuals
		WHERE project_id = $1
		ORDER BY period`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load actuals: %w", err)
	}
	defer rows.Close()

	var out []model.ActualsEntry
	for rows.Next() {
		var e model.ActualsEntry
		if err := rows.Scan(&e.ProjectID, &e.Period, &e.Revenue, &e.Cost, &e.Profit, &e.Attendance); err != nil {
			return nil, fmt.Errorf("failed to scan actuals row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
