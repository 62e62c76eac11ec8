package swap

import (
	"time"

	"github.com/google/uuid"
)

// SwapRequest is a proposed skill-for-skill exchange between two users.
// Message is free text fixed at creation; there is no edit operation.
// Records are never deleted: terminal swaps are kept for history and rating.
type SwapRequest struct {
	ID               uuid.UUID  `json:"id"`
	RequesterID      uuid.UUID  `json:"requester_id"`
	TargetID         uuid.UUID  `json:"target_id"`
	RequesterSkillID *uuid.UUID `json:"requester_skill_id,omitempty"`
	TargetSkillID    *uuid.UUID `json:"target_skill_id,omitempty"`
	Message          string     `json:"message,omitempty"`
	Status           Status     `json:"status"`
	ScheduledAt      *time.Time `json:"scheduled_at,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Role is the caller's relationship to a swap request.
type Role int

const (
	RoleNone Role = iota
	RoleRequester
	RoleTarget
)

func (r SwapRequest) RoleOf(userID uuid.UUID) Role {
	switch userID {
	case r.RequesterID:
		return RoleRequester
	case r.TargetID:
		return RoleTarget
	default:
		return RoleNone
	}
}

// CounterpartyOf returns the other party's id, used to route status-change
// notifications. The caller must be a party to the swap.
func (r SwapRequest) CounterpartyOf(userID uuid.UUID) uuid.UUID {
	if userID == r.RequesterID {
		return r.TargetID
	}
	return r.RequesterID
}
