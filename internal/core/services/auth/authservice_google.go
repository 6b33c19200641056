package auth

import (
	"context"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ IGoogleAuthService = &googleAuthService{}

type googleAuthService struct {
	userPort     secondary.UserPort
	tokenService primary.TokenService
	logger       primary.Logger
}

func NewGoogleAuthService(
	userPort secondary.UserPort,
	tokenService primary.TokenService,
	logger primary.Logger,
) IGoogleAuthService {
	return &googleAuthService{
		userPort:     userPort,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (s googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// LoginGoogle logs in an existing Google account or provisions a new
// Student account from the profile. Google accounts carry no password
// hash; they can only authenticate through this provider.
func (s googleAuthService) LoginGoogle(ctx context.Context, profile GoogleUser) (*domain.LoginResult, error) {
	if profile.ID == "" {
		return nil, errs.InvalidCredentials
	}
	if profile.Email == "" {
		return nil, errs.EmailRequired
	}

	user, err := s.userPort.GetByGoogleID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		googleID := profile.ID
		user = &domain.User{
			Name:         profile.Name,
			Email:        profile.Email,
			Role:         domain.RoleStudent,
			AuthProvider: string(domain.ProviderGoogle),
			GoogleID:     &googleID,
		}
		if err = s.userPort.Create(ctx, user); err != nil {
			s.logger.Error("Failed to provision google user", "error", err)
			return nil, err
		}
	}

	token, err := s.tokenService.GenerateToken(ctx, domain.Principal{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", "error", err)
		return nil, errs.GeneratingToken
	}

	return &domain.LoginResult{User: user, Token: token}, nil
}
