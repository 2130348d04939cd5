package automation

import "context"

// Repository defines the operations for retrieving Automation entities.
type Repository interface {
	// ListActiveWithTarget returns the user's active automations, each row
	// pre-joined with its target metric or step template so the generator
	// has the title, description, goal and unit at hand.
	ListActiveWithTarget(ctx context.Context, userID string) ([]*Automation, error)
}
