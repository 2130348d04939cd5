package user

import (
	"database/sql"
	"time"
)

// User represents an account in the coaching application. AuthID is the
// subject assigned by the external identity provider; the application's own
// tables reference users by ID.
type User struct {
	ID        string
	AuthID    string
	Email     string
	Name      sql.NullString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
