package instance

import (
	"database/sql"
	"time"
)

// Kind selects which store a generated instance is written to.
type Kind string

const (
	KindStep  Kind = "step"  // daily_steps table
	KindEvent Kind = "event" // events table
)

// Instance is a materialized occurrence of an automation for one calendar
// day: either a daily step or a calendar event, depending on Kind. Instances
// are always created incomplete and are never mutated by the generator after
// creation; completion and editing happen elsewhere.
type Instance struct {
	ID          string
	UserID      string
	GoalID      string
	Title       string
	Description sql.NullString
	Completed   bool
	Date        time.Time // local midnight of the target day
	IsImportant bool
	IsUrgent    bool
	// Type is the step/event type discriminator stored alongside the row.
	Type string
	// AutomationID links an event back to the automation that produced it.
	AutomationID sql.NullString
	// At most one of the target references is set, mirroring the
	// automation's target type.
	TargetMetricID sql.NullString
	TargetStepID   sql.NullString
	Unit           sql.NullString
	CreatedAt      time.Time
}
