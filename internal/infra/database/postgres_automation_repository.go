package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reluam/pokrok/internal/domain/automation"
)

type PostgresAutomationRepository struct {
	db *sql.DB
}

func NewPostgresAutomationRepository(db *sql.DB) *PostgresAutomationRepository {
	return &PostgresAutomationRepository{db: db}
}

func (r *PostgresAutomationRepository) ListActiveWithTarget(ctx context.Context, userID string) ([]*automation.Automation, error) {
	// One LEFT JOIN per target type; COALESCE folds whichever side matched
	// into the target columns the generator copies from.
	query := `SELECT a.id, a.user_id, a.name, a.description, a.target_type, a.target_id,
                      a.frequency_type, a.frequency_time, a.scheduled_date, a.is_active,
                      a.created_at, a.updated_at,
                      COALESCE(m.name, s.title, a.name)          AS target_title,
                      COALESCE(m.description, s.description)     AS target_description,
                      COALESCE(m.goal_id, s.goal_id)             AS target_goal_id,
                      m.unit                                     AS target_unit,
                      s.step_type                                AS target_step_type
               FROM automations a
               LEFT JOIN metrics m     ON a.target_type = 'metric' AND m.id = a.target_id
               LEFT JOIN daily_steps s ON a.target_type = 'step'   AND s.id = a.target_id
               WHERE a.user_id = $1 AND a.is_active = TRUE
               ORDER BY a.created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing active automations: %w", err)
	}
	defer rows.Close()

	automations := make([]*automation.Automation, 0)
	for rows.Next() {
		a := &automation.Automation{}
		var goalID sql.NullString
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Description, &a.TargetType, &a.TargetID,
			&a.FrequencyType, &a.FrequencyTime, &a.ScheduledDate, &a.IsActive,
			&a.CreatedAt, &a.UpdatedAt,
			&a.Target.Title, &a.Target.Description, &goalID,
			&a.Target.Unit, &a.Target.StepType,
		); err != nil {
			return nil, fmt.Errorf("error scanning automation row: %w", err)
		}
		a.Target.GoalID = goalID.String
		automations = append(automations, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating automation rows: %w", err)
	}
	return automations, nil
}
