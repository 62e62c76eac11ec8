package rating

import (
	"time"

	"github.com/google/uuid"
)

// Rating is post-swap feedback from one party about the other. Only parties
// to a completed swap may rate, once each.
type Rating struct {
	ID        uuid.UUID
	SwapID    uuid.UUID
	RaterID   uuid.UUID
	RateeID   uuid.UUID
	Score     int
	Feedback  string
	CreatedAt time.Time
}
