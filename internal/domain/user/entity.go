package user

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// GenreList holds a user's preferred genres, stored as jsonb.
// Malformed stored data decodes to an empty list instead of failing the row.
type GenreList []string

// Value implements driver.Valuer
func (g GenreList) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	return json.Marshal(g)
}

// Scan implements sql.Scanner
func (g *GenreList) Scan(src interface{}) error {
	*g = GenreList{}
	if src == nil {
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil
	}
	*g = parsed
	return nil
}

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Pseudo       string    `db:"pseudo"`
	Role         Role      `db:"role"`

	PhotoURL         sql.NullString `db:"photo_url"`
	Bio              sql.NullString `db:"bio"`
	GenrePreferences GenreList      `db:"genre_preferences"`

	// Password reset
	ResetTokenHash sql.NullString `db:"reset_token_hash"`
	ResetTokenExp  sql.NullTime   `db:"reset_token_exp"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModerate returns true if user can moderate content
func (u *User) CanModerate() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
