package service

import (
	"context"
	"errors"
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/auth"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"go.uber.org/zap"
)

type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
}

type AuthService struct {
	users  UserRepository
	issuer *auth.TokenIssuer
	logger *zap.Logger

	checkUnknown func(password string) error
}

func NewAuthService(users UserRepository, issuer *auth.TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:        users,
		issuer:       issuer,
		logger:       logger,
		checkUnknown: auth.CheckUnknownUser,
	}
}

// Login exchanges a username and password for a signed token. Unknown users
// and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		return nil, domain.NewValidationError("username", domain.CodeMissingFields, "Username and password are required")
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn("Login rejected", zap.String("username", username))
			return nil, s.checkUnknown(req.Password)
		}
		return nil, err
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Login rejected", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(*user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &domain.LoginResponse{
		Token: token,
		User: domain.UserView{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

// EnsureUser creates the user with the given role unless the username is
// already taken.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string, role domain.Role) error {
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := s.users.CreateUser(ctx, user); err != nil && !errors.Is(err, domain.ErrDuplicateUser) {
		return err
	}
	s.logger.Info("User seeded", zap.String("username", username), zap.String("role", string(role)))
	return nil
}
