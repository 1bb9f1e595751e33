package rdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"
	"github.com/martijn/userservice/internal/core/domain"
	"github.com/martijn/userservice/internal/core/repository"
)

type userRow struct {
	ID   int64         `db:"id"`
	Name string        `db:"name"`
	Age  sql.NullInt64 `db:"age"`
}

// toDomain maps a NULL age to 0. Ages outside the uint32 range, which other
// writers can store in a BIGINT column, are rejected rather than truncated.
func (r userRow) toDomain() (domain.User, error) {
	var age uint32
	if r.Age.Valid {
		if r.Age.Int64 < 0 || r.Age.Int64 > math.MaxUint32 {
			return domain.User{}, domain.NewStoreError("decode user",
				fmt.Errorf("age %d of user %d is out of range", r.Age.Int64, r.ID))
		}
		age = uint32(r.Age.Int64)
	}
	return domain.User{
		ID:   domain.UserID(r.ID),
		Name: r.Name,
		Age:  age,
	}, nil
}

type userRepository struct {
	q sqlx.ExtContext
}

// NewUserRepository runs its queries on q, which may be the pooled *sqlx.DB
// or an open *sqlx.Tx.
func NewUserRepository(q sqlx.ExtContext) repository.UserRepository {
	return &userRepository{q: q}
}

const listUsersSQL = `
SELECT
	id,
	name,
	age
FROM
	users
ORDER BY
	id`

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, listUsersSQL); err != nil {
		return nil, domain.NewStoreError("list users", err)
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		user, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		users[i] = user
	}
	return users, nil
}

const getUserSQL = `
SELECT
	id,
	name,
	age
FROM
	users
WHERE
	id = ?`

func (r *userRepository) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(getUserSQL), int64(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStoreError("get user", err)
	}

	user, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &user, nil
}

const createUserSQL = `
INSERT INTO users (name, age)
	VALUES (?, ?)`

const createUserReturningSQL = createUserSQL + `
	RETURNING id, name, age`

// CreateUser validates user before touching the store.
func (r *userRepository) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}

	if r.q.DriverName() == mysqlDriver {
		return r.createWithLastInsertID(ctx, user)
	}

	var row userRow
	err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(createUserReturningSQL), user.Name, int64(user.Age))
	if err != nil {
		return domain.User{}, domain.NewStoreError("create user", err)
	}
	return row.toDomain()
}

// createWithLastInsertID serves drivers without INSERT ... RETURNING.
func (r *userRepository) createWithLastInsertID(ctx context.Context, user domain.NewUser) (domain.User, error) {
	result, err := r.q.ExecContext(ctx, r.q.Rebind(createUserSQL), user.Name, int64(user.Age))
	if err != nil {
		return domain.User{}, domain.NewStoreError("create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.User{}, domain.NewStoreError("get last insert id", err)
	}

	created, err := r.GetUser(ctx, domain.UserID(id))
	if err != nil {
		return domain.User{}, err
	}
	if created == nil {
		return domain.User{}, domain.NewStoreError("create user", sql.ErrNoRows)
	}
	return *created, nil
}
