package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/auth"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password;
// the two cases are indistinguishable to the caller
var ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// AuthService handles registration, login and logout
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	clock      shared.Clock
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	clock shared.Clock,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		clock:      clock,
		logger:     logger,
	}
}

// Register creates a user with the default role
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.Username, req.Password, req.Email, identity.RoleUser, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.L(ctx).Warn("Registration rejected", zap.String("username", user.Username), zap.Error(err))
		return nil, err
	}

	logger.L(ctx).Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	resp := ToUserResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			logger.L(ctx).Warn("Login for unknown user", zap.String("username", req.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		logger.L(ctx).Warn("Invalid password attempt", zap.String("username", user.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, err
	}

	logger.L(ctx).Info("User logged in", zap.Int64("user_id", user.ID))
	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims.ID == "" {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL(s.clock.Now())); err != nil {
		return err
	}
	logger.L(ctx).Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// Me returns the account behind a token
func (s *AuthService) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	_, err := s.userRepo.Update(ctx, userID, func(u *identity.User) error {
		return u.ChangePassword(req.OldPassword, req.NewPassword)
	})
	if err != nil {
		logger.L(ctx).Warn("Password change rejected", zap.Int64("user_id", userID), zap.Error(err))
		return err
	}
	logger.L(ctx).Info("Password changed", zap.Int64("user_id", userID))
	return nil
}

// EnsureAdmin creates the configured bootstrap administrator unless a user
// with that name already exists. It returns true when a user was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error) {
	if cfg.Username == "" {
		return false, nil
	}
	if _, err := s.userRepo.FindByUsername(ctx, cfg.Username); err == nil {
		return false, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return false, err
	}

	email := cfg.Email
	if email == "" {
		email = identity.NormalizeUsername(cfg.Username) + "@localhost.localdomain"
	}
	user, err := identity.NewUser(cfg.Username, cfg.Password, email, identity.RoleAdmin, s.clock.Now())
	if err != nil {
		return false, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return false, err
	}

	s.logger.Info("Bootstrap administrator created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return true, nil
}
