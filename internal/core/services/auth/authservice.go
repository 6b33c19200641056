package auth

import (
	"context"

	"gitlab.com/amsys-2025.net/internal/domain"
)

// RegisterInput carries the fields of a local registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// GoogleUser is the profile returned by the Google userinfo endpoint.
type GoogleUser struct {
	ID    string
	Name  string
	Email string
}

type IAuthService interface {
	ProviderName() domain.Provider

	// Login authenticates the credentials and returns the user with a
	// signed bearer token.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

type ILocalAuthService interface {
	IAuthService
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

type IGoogleAuthService interface {
	ProviderName() domain.Provider

	// LoginGoogle resolves or provisions the account behind a Google
	// profile and returns a signed bearer token.
	LoginGoogle(ctx context.Context, profile GoogleUser) (*domain.LoginResult, error)
}
