package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	FirstName       string
	LastName        string
	ProfileImageURL string
	Location        string
	Bio             string
	IsActive        bool
	EmailVerified   bool
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
