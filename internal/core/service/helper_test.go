package service

import (
	"context"

	"github.com/martijn/userservice/internal/core/domain"
)

// fakeUserRepository returns scripted results and records the calls it gets.
type fakeUserRepository struct {
	users []domain.User
	err   error

	createCalls []domain.NewUser
	getCalls    []domain.UserID
	listCalls   int
}

func (f *fakeUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.users, nil
}

func (f *fakeUserRepository) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	f.getCalls = append(f.getCalls, id)
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	f.createCalls = append(f.createCalls, user)
	if f.err != nil {
		return domain.User{}, f.err
	}
	return user.WithID(100), nil
}
