package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/domain/user"
)

// UserResponse is the public shape of a user. The password hash and
// email verification internals never leave the handler layer.
type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email,omitempty"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	Location        string     `json:"location,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	IsActive        bool       `json:"is_active"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Location:        u.Location,
		Bio:             u.Bio,
		IsActive:        u.IsActive,
		LastLogin:       u.LastLogin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// NewPublicUserResponse strips the email for profiles viewed by other users.
func NewPublicUserResponse(u user.User) UserResponse {
	res := NewUserResponse(u)
	res.Email = ""
	return res
}
