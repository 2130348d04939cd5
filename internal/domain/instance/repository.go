package instance

import "context"

// Repository defines the operations the generator needs on instance stores.
// Implementations route by Kind to the daily-step or event table.
type Repository interface {
	// FindForDay looks up an existing instance for the given automation and
	// day key (YYYY-MM-DD). Step instances predate the automation back
	// reference, so step lookups fall back to (goalID, title, dayKey).
	// A miss is reported with the store's not-found sentinel.
	FindForDay(ctx context.Context, kind Kind, userID, automationID, goalID, title, dayKey string) (*Instance, error)

	// Insert persists a freshly built instance. A row rejected by the
	// store's uniqueness backstop on (user, automation, day) is reported
	// with the duplicate sentinel and must be treated as "already exists".
	Insert(ctx context.Context, kind Kind, inst *Instance) error
}
