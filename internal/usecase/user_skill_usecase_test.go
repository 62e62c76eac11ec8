package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"
)

type memUserSkillRepo struct {
	offered map[uuid.UUID]skill.OfferedSkill
	wanted  map[uuid.UUID]skill.WantedSkill
}

func newMemUserSkillRepo() *memUserSkillRepo {
	return &memUserSkillRepo{
		offered: map[uuid.UUID]skill.OfferedSkill{},
		wanted:  map[uuid.UUID]skill.WantedSkill{},
	}
}

func (m *memUserSkillRepo) ListOffered(_ context.Context, userID uuid.UUID) ([]skill.OfferedSkill, error) {
	out := []skill.OfferedSkill{}
	for _, o := range m.offered {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memUserSkillRepo) ListWanted(_ context.Context, userID uuid.UUID) ([]skill.WantedSkill, error) {
	out := []skill.WantedSkill{}
	for _, w := range m.wanted {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memUserSkillRepo) AddOffered(_ context.Context, os skill.OfferedSkill) (skill.OfferedSkill, error) {
	m.offered[os.ID] = os
	return os, nil
}

func (m *memUserSkillRepo) AddWanted(_ context.Context, ws skill.WantedSkill) (skill.WantedSkill, error) {
	m.wanted[ws.ID] = ws
	return ws, nil
}

func (m *memUserSkillRepo) RemoveOffered(_ context.Context, userID, skillID uuid.UUID) error {
	for id, o := range m.offered {
		if o.UserID == userID && o.SkillID == skillID {
			delete(m.offered, id)
			return nil
		}
	}
	return repository.ErrUserSkillNotFound
}

func (m *memUserSkillRepo) RemoveWanted(_ context.Context, userID, skillID uuid.UUID) error {
	for id, w := range m.wanted {
		if w.UserID == userID && w.SkillID == skillID {
			delete(m.wanted, id)
			return nil
		}
	}
	return repository.ErrUserSkillNotFound
}

func userSkillFixture() (*UserSkill, *memCache, uuid.UUID) {
	skillID := uuid.New()
	cache := newMemCache()
	uc := NewUserSkillUsecase(
		newMemUserSkillRepo(),
		stubSkillRepo{known: map[uuid.UUID]bool{skillID: true}},
		cache,
	)
	return uc, cache, skillID
}

func TestAddOfferedSkill(t *testing.T) {
	uc, cache, skillID := userSkillFixture()
	userID := uuid.New()

	created, err := uc.AddOffered(context.Background(), userID, AddOfferedSkillInput{
		SkillID:     skillID,
		Proficiency: skill.ProficiencyAdvanced,
		Description: "ten years of weekend gigs",
	})
	if err != nil {
		t.Fatalf("add offered: %v", err)
	}
	if created.UserID != userID || created.SkillID != skillID {
		t.Fatalf("created = %+v", created)
	}
	if cache.invalidated != 1 {
		t.Fatalf("search cache invalidations = %d, want 1", cache.invalidated)
	}

	list, err := uc.ListOffered(context.Background(), userID)
	if err != nil {
		t.Fatalf("list offered: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("offered = %+v", list)
	}
}

func TestAddOfferedSkill_InvalidProficiency(t *testing.T) {
	uc, _, skillID := userSkillFixture()

	_, err := uc.AddOffered(context.Background(), uuid.New(), AddOfferedSkillInput{
		SkillID:     skillID,
		Proficiency: "grandmaster",
	})
	if !errors.Is(err, ErrInvalidProficiency) {
		t.Fatalf("expected ErrInvalidProficiency, got %v", err)
	}
}

func TestAddWantedSkill_InvalidUrgency(t *testing.T) {
	uc, _, skillID := userSkillFixture()

	_, err := uc.AddWanted(context.Background(), uuid.New(), AddWantedSkillInput{
		SkillID: skillID,
		Urgency: "yesterday",
	})
	if !errors.Is(err, ErrInvalidUrgency) {
		t.Fatalf("expected ErrInvalidUrgency, got %v", err)
	}
}

func TestAddUserSkill_UnknownSkill(t *testing.T) {
	uc, _, _ := userSkillFixture()

	_, err := uc.AddOffered(context.Background(), uuid.New(), AddOfferedSkillInput{
		SkillID:     uuid.New(),
		Proficiency: skill.ProficiencyBeginner,
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("offered: expected ErrSkillNotFound, got %v", err)
	}

	_, err = uc.AddWanted(context.Background(), uuid.New(), AddWantedSkillInput{
		SkillID: uuid.New(),
		Urgency: skill.UrgencyLow,
	})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("wanted: expected ErrSkillNotFound, got %v", err)
	}
}

func TestRemoveOfferedSkill(t *testing.T) {
	uc, cache, skillID := userSkillFixture()
	userID := uuid.New()

	if _, err := uc.AddOffered(context.Background(), userID, AddOfferedSkillInput{
		SkillID:     skillID,
		Proficiency: skill.ProficiencyIntermediate,
	}); err != nil {
		t.Fatalf("add offered: %v", err)
	}

	if err := uc.RemoveOffered(context.Background(), userID, skillID); err != nil {
		t.Fatalf("remove offered: %v", err)
	}
	if cache.invalidated != 2 {
		t.Fatalf("search cache invalidations = %d, want 2", cache.invalidated)
	}

	err := uc.RemoveOffered(context.Background(), userID, skillID)
	if !errors.Is(err, ErrUserSkillNotFound) {
		t.Fatalf("expected ErrUserSkillNotFound, got %v", err)
	}
}
