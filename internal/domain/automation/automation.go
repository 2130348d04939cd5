package automation

import (
	"database/sql"
	"time"
)

// TargetType says which entity an automation materializes instances for.
type TargetType string

const (
	TargetTypeMetric TargetType = "metric"
	TargetTypeStep   TargetType = "step"
)

// FrequencyType distinguishes one-shot schedules from recurring ones.
type FrequencyType string

const (
	FrequencyOneTime   FrequencyType = "one-time"
	FrequencyRecurring FrequencyType = "recurring"
)

// Automation is a user-owned recurrence rule. Exactly one of FrequencyTime
// (recurring) or ScheduledDate (one-time) is meaningful; the other is null
// and ignored.
type Automation struct {
	ID            string
	UserID        string
	Name          string
	Description   sql.NullString
	TargetType    TargetType
	TargetID      string
	FrequencyType FrequencyType
	FrequencyTime sql.NullString
	ScheduledDate sql.NullTime
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Target carries the joined columns of the metric or step template the
	// automation points at. Populated by ListActiveWithTarget.
	Target Target
}

// Target holds the fields copied into a generated instance.
type Target struct {
	Title       string
	Description sql.NullString
	GoalID      string
	Unit        sql.NullString
	StepType    sql.NullString
}
