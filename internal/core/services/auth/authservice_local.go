package auth

import (
	"context"

	"gitlab.com/amsys-2025.net/internal/core/ports/primary"
	"gitlab.com/amsys-2025.net/internal/core/ports/secondary"
	"gitlab.com/amsys-2025.net/internal/domain"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

var _ ILocalAuthService = &localAuthService{}

type localAuthService struct {
	userPort     secondary.UserPort
	tokenService primary.TokenService
	logger       primary.Logger
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	tokenService primary.TokenService,
	logger primary.Logger,
) ILocalAuthService {
	return &localAuthService{
		userPort:     userPort,
		tokenService: tokenService,
		logger:       logger,
	}
}

func (s localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

func (s localAuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := s.userPort.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.UserExists
	}

	hash, err := s.tokenService.EncryptPassword(ctx, input.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return nil, errs.InternalError
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: &hash,
		Role:         input.Role,
		AuthProvider: string(domain.ProviderLocal),
	}
	if err = s.userPort.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s localAuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userPort.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.UserNotFound
	}
	if user.PasswordHash == nil {
		return nil, errs.InvalidCredentials
	}

	valid, err := s.tokenService.VerifyPassword(ctx, *user.PasswordHash, password)
	if err != nil || !valid {
		return nil, errs.InvalidCredentials
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
