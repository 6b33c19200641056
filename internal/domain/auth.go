package domain

import "github.com/google/uuid"

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

// Principal is the identity extracted from a verified bearer token.
type Principal struct {
	UserID  uuid.UUID `json:"sub"`
	Role    Role      `json:"role"`
	TokenID string    `json:"jti"`
}

type LoginResult struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token"`
}
