package service

import (
	"context"

	"github.com/martijn/userservice/internal/core/domain"
	"github.com/martijn/userservice/internal/core/repository"
)

// CreateUser validates a candidate and stores it. The same validation
// applies whichever repository backs it.
type CreateUser struct {
	userRepo repository.UserRepository
}

func NewCreateUser(userRepo repository.UserRepository) *CreateUser {
	return &CreateUser{
		userRepo: userRepo,
	}
}

// Run returns the validation error without calling the repository when the
// candidate is invalid. Repository results are returned unchanged.
func (uc *CreateUser) Run(ctx context.Context, candidate domain.NewUser) (domain.User, error) {
	if err := candidate.Validate(); err != nil {
		return domain.User{}, err
	}

	return uc.userRepo.CreateUser(ctx, candidate)
}
