package domain

import (
	"fmt"
	"strconv"
)

// UserID identifies a stored user. It is assigned by the repository and
// serializes as a bare integer.
type UserID int64

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseUserID parses the decimal form of a user id.
func ParseUserID(s string) (UserID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q: %w", s, err)
	}
	return UserID(v), nil
}

// User is a persisted user. Repositories hand out copies, never references
// to their own records.
type User struct {
	ID   UserID `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"min=1"`
	Age  uint32 `json:"age" db:"age"`
}

// NewUser is a candidate user that has not been stored yet.
type NewUser struct {
	Name string `json:"name" validate:"min=1"`
	Age  uint32 `json:"age"`
}

func (u User) Validate() error {
	return validateStruct(u)
}

func (u NewUser) Validate() error {
	return validateStruct(u)
}

// WithID builds the stored form of the candidate.
func (u NewUser) WithID(id UserID) User {
	return User{
		ID:   id,
		Name: u.Name,
		Age:  u.Age,
	}
}
