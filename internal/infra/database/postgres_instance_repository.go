package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/reluam/pokrok/internal/domain/instance"
)

// Custom errors specific to instance stores
var ErrInstanceNotFound = fmt.Errorf("generated instance not found")
var ErrDuplicateInstance = fmt.Errorf("duplicate instance for (user, automation, day)")

type PostgresInstanceRepository struct {
	db *sql.DB
}

func NewPostgresInstanceRepository(db *sql.DB) *PostgresInstanceRepository {
	return &PostgresInstanceRepository{db: db}
}

// FindForDay checks whether an instance already exists for the given day key.
// Events carry the automation back reference, so the lookup keys on it; daily
// steps are keyed by (goal, title) instead. Stored timestamps are compared
// through their YYYY-MM-DD rendering, matching the day key produced by the
// generator.
func (r *PostgresInstanceRepository) FindForDay(ctx context.Context, kind instance.Kind, userID, automationID, goalID, title, dayKey string) (*instance.Instance, error) {
	var query string
	var args []any
	switch kind {
	case instance.KindEvent:
		query = `SELECT id, user_id, goal_id, title, description, completed, date,
                         is_important, is_urgent, COALESCE(event_type, ''), automation_id,
                         target_metric_id, target_step_id, unit, created_at
                  FROM events
                  WHERE user_id = $1 AND automation_id = $2 AND to_char(date, 'YYYY-MM-DD') = $3
                  LIMIT 1`
		args = []any{userID, automationID, dayKey}
	case instance.KindStep:
		query = `SELECT id, user_id, goal_id, title, description, completed, date,
                         is_important, is_urgent, COALESCE(step_type, ''), NULL, NULL, NULL, NULL, created_at
                  FROM daily_steps
                  WHERE user_id = $1 AND goal_id = $2 AND title = $3 AND to_char(date, 'YYYY-MM-DD') = $4
                  LIMIT 1`
		args = []any{userID, goalID, title, dayKey}
	default:
		return nil, fmt.Errorf("unknown instance kind: %s", kind)
	}

	inst := &instance.Instance{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&inst.ID, &inst.UserID, &inst.GoalID, &inst.Title, &inst.Description,
		&inst.Completed, &inst.Date, &inst.IsImportant, &inst.IsUrgent, &inst.Type,
		&inst.AutomationID, &inst.TargetMetricID, &inst.TargetStepID, &inst.Unit,
		&inst.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("error finding %s instance for day %s: %w", kind, dayKey, err)
	}
	return inst, nil
}

func (r *PostgresInstanceRepository) Insert(ctx context.Context, kind instance.Kind, inst *instance.Instance) error {
	var query string
	var args []any
	switch kind {
	case instance.KindEvent:
		query = `INSERT INTO events (id, user_id, goal_id, title, description, completed, date,
                                      is_important, is_urgent, event_type, automation_id,
                                      target_metric_id, target_step_id, unit)
                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
                  RETURNING created_at`
		args = []any{
			inst.ID, inst.UserID, inst.GoalID, inst.Title, inst.Description,
			inst.Completed, inst.Date, inst.IsImportant, inst.IsUrgent, inst.Type,
			inst.AutomationID, inst.TargetMetricID, inst.TargetStepID, inst.Unit,
		}
	case instance.KindStep:
		query = `INSERT INTO daily_steps (id, user_id, goal_id, title, description, completed, date,
                                           is_important, is_urgent, step_type)
                  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                  RETURNING created_at`
		args = []any{
			inst.ID, inst.UserID, inst.GoalID, inst.Title, inst.Description,
			inst.Completed, inst.Date, inst.IsImportant, inst.IsUrgent, inst.Type,
		}
	default:
		return fmt.Errorf("unknown instance kind: %s", kind)
	}

	err := r.db.QueryRowContext(ctx, query, args...).Scan(&inst.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return ErrDuplicateInstance
		}
		return fmt.Errorf("error inserting %s instance: %w", kind, err)
	}
	return nil
}
