package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/domain/rating"
)

type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	SwapID    uuid.UUID `json:"swap_id"`
	RaterID   uuid.UUID `json:"rater_id"`
	RateeID   uuid.UUID `json:"ratee_id"`
	Score     int       `json:"score"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRatingResponse(r rating.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		SwapID:    r.SwapID,
		RaterID:   r.RaterID,
		RateeID:   r.RateeID,
		Score:     r.Score,
		Feedback:  r.Feedback,
		CreatedAt: r.CreatedAt,
	}
}
