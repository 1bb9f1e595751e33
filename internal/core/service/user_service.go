package service

import (
	"context"

	"github.com/martijn/userservice/internal/core/domain"
	"github.com/martijn/userservice/internal/core/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo   repository.UserRepository
	createUser *CreateUser
	log        *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		userRepo:   userRepo,
		createUser: NewCreateUser(userRepo),
		log:        log,
	}
}

// ListUsers returns every stored user
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

// GetUser returns nil when no user has the given id
func (s *UserService) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		s.log.Error("failed to get user", zap.Int64("id", int64(id)), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// CreateUser runs the create-user use case
func (s *UserService) CreateUser(ctx context.Context, candidate domain.NewUser) (domain.User, error) {
	user, err := s.createUser.Run(ctx, candidate)
	if err != nil {
		if domain.KindOf(err) == domain.KindValidation {
			s.log.Debug("rejected user", zap.Error(err))
		} else {
			s.log.Error("failed to create user", zap.Error(err))
		}
		return domain.User{}, err
	}

	s.log.Info("user created", zap.Int64("id", int64(user.ID)), zap.String("name", user.Name))
	return user, nil
}
