package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/reluam/pokrok/internal/domain/user"
)

// Custom errors
var ErrUserNotFound = fmt.Errorf("user not found")

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByAuthID(ctx context.Context, authID string) (*user.User, error) {
	query := `SELECT id, auth_id, email, name, is_active, created_at, updated_at
               FROM users WHERE auth_id = $1`
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, authID).Scan(&u.ID, &u.AuthID, &u.Email, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by auth ID: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ListActive(ctx context.Context) ([]*user.User, error) {
	query := `SELECT id, auth_id, email, name, is_active, created_at, updated_at
               FROM users WHERE is_active = TRUE ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing active users: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.AuthID, &u.Email, &u.Name, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning active user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active users: %w", err)
	}
	return users, nil
}
