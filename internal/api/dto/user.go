package dto

import "github.com/martijn/userservice/internal/core/domain"

// CreateUserRequest represents the user creation request. Field rules are
// enforced by the domain, not by binding tags.
type CreateUserRequest struct {
	Name string `json:"name"`
	Age  uint32 `json:"age"`
}

// UserResponse represents a user
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  uint32 `json:"age"`
}

func (r CreateUserRequest) ToDomain() domain.NewUser {
	return domain.NewUser{
		Name: r.Name,
		Age:  r.Age,
	}
}

func ToUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:   int64(user.ID),
		Name: user.Name,
		Age:  user.Age,
	}
}

// ToUserResponses never returns nil so empty lists encode as [].
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, user := range users {
		out[i] = ToUserResponse(user)
	}
	return out
}
