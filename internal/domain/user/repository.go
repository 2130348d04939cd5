package user

import "context"

// Repository defines the operations for retrieving User entities.
type Repository interface {
	GetByAuthID(ctx context.Context, authID string) (*User, error)
	// ListActive returns every active user, for batch sweeps that run
	// generation across the whole user base.
	ListActive(ctx context.Context) ([]*User, error)
}
