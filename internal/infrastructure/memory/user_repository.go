package memory

import (
	"context"
	"math/rand"
	"sync"

	"github.com/martijn/userservice/internal/core/domain"
	"github.com/martijn/userservice/internal/core/repository"
)

// UserRepository keeps users in process memory, in insertion order.
//
// Ids are random 32-bit values and collisions are neither prevented nor
// detected, so this adapter is for tests and demos only. It does not
// validate its input.
type UserRepository struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID func() uint32
}

var _ repository.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns a repository holding a copy of seed.
func NewUserRepository(seed ...domain.User) *UserRepository {
	users := make([]domain.User, len(seed))
	copy(users, seed)

	return &UserRepository{
		users:  users,
		nextID: rand.Uint32,
	}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// GetUser returns the first user stored with id.
func (r *UserRepository) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := user.WithID(domain.UserID(r.nextID()))
	r.users = append(r.users, created)
	return created, nil
}
