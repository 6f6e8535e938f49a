package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/bizledger/backend/internal/domain/identity"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/logger"
)

// UserService is the administrator's view of accounts
type UserService struct {
	userRepo identity.UserRepository
	clock    shared.Clock
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, clock shared.Clock) *UserService {
	return &UserService{userRepo: userRepo, clock: clock}
}

// Create adds a user with an explicit role
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	user, err := identity.NewUser(req.Username, req.Password, req.Email, identity.Role(req.Role), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns every user in id order
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}
