package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the account type of a user. The set is closed: handlers and
// services switch on it exhaustively.
type Role string

const (
	RoleProfessor Role = "Professor"
	RoleStudent   Role = "Student"
)

func (r Role) Valid() bool {
	return r == RoleProfessor || r == RoleStudent
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	AuthProvider string    `db:"auth_provider" json:"-"`
	GoogleID     *string   `db:"google_id" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserSummary is the shape embedded in group and submission payloads.
type UserSummary struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type UsersTable struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	AuthProvider string
	GoogleID     string
	CreatedAt    string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		Name:         "name",
		Email:        "email",
		PasswordHash: "password_hash",
		Role:         "role",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
		CreatedAt:    "created_at",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}
