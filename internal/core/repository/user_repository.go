package repository

import (
	"context"

	"github.com/martijn/userservice/internal/core/domain"
)

// UserRepository is the persistence port for users.
//
// GetUser returns nil and no error when no user matches. CreateUser is not
// required to validate its input; callers that need the guarantee validate
// first (see service.CreateUser).
type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id domain.UserID) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error)
}
