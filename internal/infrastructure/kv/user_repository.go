package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/martijn/userservice/internal/core/domain"
	"github.com/martijn/userservice/internal/core/repository"
	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "users"

// userRepository stores each user as JSON under <prefix>:<id>. Ids come from
// INCR on <prefix>:seq and insertion order is kept in the <prefix>:index list.
type userRepository struct {
	client redis.Cmdable
	prefix string
}

func NewUserRepository(client redis.Cmdable, prefix string) repository.UserRepository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &userRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *userRepository) seqKey() string {
	return r.prefix + ":seq"
}

func (r *userRepository) indexKey() string {
	return r.prefix + ":index"
}

func (r *userRepository) userKey(id domain.UserID) string {
	return fmt.Sprintf("%s:%d", r.prefix, id)
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	ids, err := r.client.LRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, domain.NewStoreError("list users", err)
	}

	users := make([]domain.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + ":" + id
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, domain.NewStoreError("list users", err)
	}

	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, domain.NewStoreError("decode user", err)
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *userRepository) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	raw, err := r.client.Get(ctx, r.userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStoreError("get user", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, domain.NewStoreError("decode user", err)
	}
	return &user, nil
}

// CreateUser validates user before touching the store.
func (r *userRepository) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}

	id, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return domain.User{}, domain.NewStoreError("allocate user id", err)
	}

	created := user.WithID(domain.UserID(id))
	data, err := json.Marshal(created)
	if err != nil {
		return domain.User{}, domain.NewStoreError("encode user", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.userKey(created.ID), data, 0)
		pipe.RPush(ctx, r.indexKey(), created.ID.String())
		return nil
	})
	if err != nil {
		return domain.User{}, domain.NewStoreError("create user", err)
	}

	return created, nil
}
