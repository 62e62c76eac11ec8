package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"
)

var ErrSkillNameTaken = errors.New("skill name already exists")

type SkillCategory struct {
	Category string        `json:"category"`
	Skills   []skill.Skill `json:"skills"`
}

type CreateSkillInput struct {
	Name        string
	Category    string
	Description string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	ListByCategory(ctx context.Context) ([]SkillCategory, error)
	SearchSkills(ctx context.Context, query string) ([]skill.Skill, error)
	CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error)
}

type SkillCatalog struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *SkillCatalog {
	return &SkillCatalog{repo: repo}
}

func (s *SkillCatalog) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	out, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *SkillCatalog) ListByCategory(ctx context.Context) ([]SkillCategory, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	grouped := map[string][]skill.Skill{}
	for _, sk := range all {
		grouped[sk.Category] = append(grouped[sk.Category], sk)
	}

	out := make([]SkillCategory, 0, len(grouped))
	for cat, skills := range grouped {
		out = append(out, SkillCategory{Category: cat, Skills: skills})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *SkillCatalog) SearchSkills(ctx context.Context, query string) ([]skill.Skill, error) {
	if strings.TrimSpace(query) == "" {
		return s.ListSkills(ctx)
	}
	out, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (s *SkillCatalog) CreateSkill(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := s.repo.Create(ctx, skill.Skill{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return skill.Skill{}, ErrSkillNameTaken
		}
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
