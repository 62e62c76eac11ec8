package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrUserSkillExists    = errors.New("skill already listed for this user")
	ErrUserSkillNotFound  = errors.New("user skill not found")
	ErrInvalidProficiency = errors.New("invalid proficiency level")
	ErrInvalidUrgency     = errors.New("invalid urgency level")
)

type AddOfferedSkillInput struct {
	SkillID     uuid.UUID
	Proficiency skill.ProficiencyLevel
	Description string
}

type AddWantedSkillInput struct {
	SkillID     uuid.UUID
	Urgency     skill.UrgencyLevel
	Description string
}

type UserSkillUsecase interface {
	ListOffered(ctx context.Context, userID uuid.UUID) ([]skill.OfferedSkill, error)
	ListWanted(ctx context.Context, userID uuid.UUID) ([]skill.WantedSkill, error)
	AddOffered(ctx context.Context, userID uuid.UUID, in AddOfferedSkillInput) (skill.OfferedSkill, error)
	AddWanted(ctx context.Context, userID uuid.UUID, in AddWantedSkillInput) (skill.WantedSkill, error)
	RemoveOffered(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveWanted(ctx context.Context, userID, skillID uuid.UUID) error
}

type UserSkill struct {
	userSkills repository.UserSkillRepository
	skills     repository.SkillRepository
	cache      SearchCache
}

func NewUserSkillUsecase(
	userSkills repository.UserSkillRepository,
	skills repository.SkillRepository,
	cache SearchCache,
) *UserSkill {
	return &UserSkill{userSkills: userSkills, skills: skills, cache: cache}
}

func (u *UserSkill) ListOffered(ctx context.Context, userID uuid.UUID) ([]skill.OfferedSkill, error) {
	out, err := u.userSkills.ListOffered(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *UserSkill) ListWanted(ctx context.Context, userID uuid.UUID) ([]skill.WantedSkill, error) {
	out, err := u.userSkills.ListWanted(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *UserSkill) AddOffered(ctx context.Context, userID uuid.UUID, in AddOfferedSkillInput) (skill.OfferedSkill, error) {
	if in.SkillID == uuid.Nil {
		return skill.OfferedSkill{}, ErrInvalidInput
	}
	if !in.Proficiency.Valid() {
		return skill.OfferedSkill{}, ErrInvalidProficiency
	}
	if err := u.requireSkill(ctx, in.SkillID); err != nil {
		return skill.OfferedSkill{}, err
	}

	created, err := u.userSkills.AddOffered(ctx, skill.OfferedSkill{
		ID:          uuid.New(),
		UserID:      userID,
		SkillID:     in.SkillID,
		Proficiency: in.Proficiency,
		Description: in.Description,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return skill.OfferedSkill{}, ErrUserSkillExists
		}
		return skill.OfferedSkill{}, ErrInternal
	}

	// Offered skills feed the category filter in user search.
	u.invalidateSearch(ctx)

	return created, nil
}

func (u *UserSkill) AddWanted(ctx context.Context, userID uuid.UUID, in AddWantedSkillInput) (skill.WantedSkill, error) {
	if in.SkillID == uuid.Nil {
		return skill.WantedSkill{}, ErrInvalidInput
	}
	if !in.Urgency.Valid() {
		return skill.WantedSkill{}, ErrInvalidUrgency
	}
	if err := u.requireSkill(ctx, in.SkillID); err != nil {
		return skill.WantedSkill{}, err
	}

	created, err := u.userSkills.AddWanted(ctx, skill.WantedSkill{
		ID:          uuid.New(),
		UserID:      userID,
		SkillID:     in.SkillID,
		Urgency:     in.Urgency,
		Description: in.Description,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return skill.WantedSkill{}, ErrUserSkillExists
		}
		return skill.WantedSkill{}, ErrInternal
	}
	return created, nil
}

func (u *UserSkill) RemoveOffered(ctx context.Context, userID, skillID uuid.UUID) error {
	err := u.userSkills.RemoveOffered(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}
	u.invalidateSearch(ctx)
	return nil
}

func (u *UserSkill) RemoveWanted(ctx context.Context, userID, skillID uuid.UUID) error {
	err := u.userSkills.RemoveWanted(ctx, userID, skillID)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *UserSkill) requireSkill(ctx context.Context, skillID uuid.UUID) error {
	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrSkillNotFound
	}
	return nil
}

func (u *UserSkill) invalidateSearch(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.InvalidateUserSearch(ctx)
	}
}
