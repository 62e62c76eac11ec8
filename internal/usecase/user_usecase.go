package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

type UserProfile struct {
	User          user.User
	SkillsOffered []skill.OfferedSkill
	SkillsWanted  []skill.WantedSkill
	AverageRating float64
}

type UpdateProfileInput struct {
	FirstName       string
	LastName        string
	ProfileImageURL string
	Location        string
	Bio             string
}

type UserUsecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error)
}

type User struct {
	users      user.Repository
	userSkills repository.UserSkillRepository
	ratings    repository.RatingRepository
	cache      SearchCache
}

func NewUserUsecase(
	users user.Repository,
	userSkills repository.UserSkillRepository,
	ratings repository.RatingRepository,
	cache SearchCache,
) *User {
	return &User{users: users, userSkills: userSkills, ratings: ratings, cache: cache}
}

func (u *User) GetProfile(ctx context.Context, id uuid.UUID) (UserProfile, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return UserProfile{}, ErrUserNotFound
		}
		return UserProfile{}, ErrInternal
	}
	usr.PasswordHash = ""

	offered, err := u.userSkills.ListOffered(ctx, id)
	if err != nil {
		return UserProfile{}, ErrInternal
	}
	wanted, err := u.userSkills.ListWanted(ctx, id)
	if err != nil {
		return UserProfile{}, ErrInternal
	}
	avg, err := u.ratings.AverageForRatee(ctx, id)
	if err != nil {
		return UserProfile{}, ErrInternal
	}

	return UserProfile{User: usr, SkillsOffered: offered, SkillsWanted: wanted, AverageRating: avg}, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return user.User{}, ErrInvalidInput
	}

	updated, err := u.users.UpdateProfile(ctx, user.User{
		ID:              userID,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		ProfileImageURL: strings.TrimSpace(in.ProfileImageURL),
		Location:        strings.TrimSpace(in.Location),
		Bio:             strings.TrimSpace(in.Bio),
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, ErrInternal
	}
	updated.PasswordHash = ""

	if u.cache != nil {
		_ = u.cache.InvalidateUserSearch(ctx)
	}

	return updated, nil
}
