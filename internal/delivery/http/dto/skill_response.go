package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/domain/skill"
)

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSkillResponse(s skill.Skill) SkillResponse {
	return SkillResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}

type OfferedSkillResponse struct {
	ID          uuid.UUID              `json:"id"`
	Skill       SkillResponse          `json:"skill"`
	Proficiency skill.ProficiencyLevel `json:"proficiency_level"`
	Description string                 `json:"description,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func NewOfferedSkillResponse(o skill.OfferedSkill) OfferedSkillResponse {
	return OfferedSkillResponse{
		ID:          o.ID,
		Skill:       NewSkillResponse(o.Skill),
		Proficiency: o.Proficiency,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
	}
}

type WantedSkillResponse struct {
	ID          uuid.UUID          `json:"id"`
	Skill       SkillResponse      `json:"skill"`
	Urgency     skill.UrgencyLevel `json:"urgency_level"`
	Description string             `json:"description,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func NewWantedSkillResponse(w skill.WantedSkill) WantedSkillResponse {
	return WantedSkillResponse{
		ID:          w.ID,
		Skill:       NewSkillResponse(w.Skill),
		Urgency:     w.Urgency,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
	}
}
