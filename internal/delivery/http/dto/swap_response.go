package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/domain/swap"
)

type SwapResponse struct {
	ID               uuid.UUID  `json:"id"`
	RequesterID      uuid.UUID  `json:"requester_id"`
	TargetID         uuid.UUID  `json:"target_id"`
	RequesterSkillID *uuid.UUID `json:"requester_skill_id,omitempty"`
	TargetSkillID    *uuid.UUID `json:"target_skill_id,omitempty"`
	Message          string     `json:"message,omitempty"`
	Status           string     `json:"status"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewSwapResponse(s swap.SwapRequest) SwapResponse {
	return SwapResponse{
		ID:               s.ID,
		RequesterID:      s.RequesterID,
		TargetID:         s.TargetID,
		RequesterSkillID: s.RequesterSkillID,
		TargetSkillID:    s.TargetSkillID,
		Message:          s.Message,
		Status:           string(s.Status),
		ScheduledAt:      s.ScheduledAt,
		Notes:            s.Notes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func NewSwapListResponse(swaps []swap.SwapRequest) []SwapResponse {
	res := make([]SwapResponse, 0, len(swaps))
	for _, s := range swaps {
		res = append(res, NewSwapResponse(s))
	}
	return res
}
