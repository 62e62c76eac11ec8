package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skill-swap/internal/domain/rating"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/repository"
)

var (
	ErrSwapNotCompleted = errors.New("swap is not completed")
	ErrNotRatingParty   = errors.New("caller is not a party to the rated swap")
	ErrAlreadyRated     = errors.New("swap already rated by this user")
	ErrInvalidScore     = errors.New("score must be between 1 and 5")
)

type CreateRatingInput struct {
	SwapID   uuid.UUID
	Score    int
	Feedback string
}

type UserRatings struct {
	Ratings []rating.Rating `json:"ratings"`
	Average float64         `json:"average_rating"`
}

type RatingUsecase interface {
	Create(ctx context.Context, raterID uuid.UUID, in CreateRatingInput) (rating.Rating, error)
	ListForUser(ctx context.Context, userID uuid.UUID) (UserRatings, error)
}

type Rating struct {
	ratings repository.RatingRepository
	swaps   repository.SwapRepository
}

func NewRatingUsecase(ratings repository.RatingRepository, swaps repository.SwapRepository) *Rating {
	return &Rating{ratings: ratings, swaps: swaps}
}

// Create records feedback from one party of a completed swap about the
// other. The ratee is derived from the swap, never taken from the caller.
func (r *Rating) Create(ctx context.Context, raterID uuid.UUID, in CreateRatingInput) (rating.Rating, error) {
	if in.SwapID == uuid.Nil {
		return rating.Rating{}, ErrInvalidInput
	}
	if in.Score < 1 || in.Score > 5 {
		return rating.Rating{}, ErrInvalidScore
	}

	s, err := r.swaps.GetByID(ctx, in.SwapID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return rating.Rating{}, ErrSwapNotFound
		}
		return rating.Rating{}, ErrInternal
	}

	if s.RoleOf(raterID) == swap.RoleNone {
		return rating.Rating{}, ErrNotRatingParty
	}
	if s.Status != swap.StatusCompleted {
		return rating.Rating{}, ErrSwapNotCompleted
	}

	exists, err := r.ratings.ExistsBySwapAndRater(ctx, in.SwapID, raterID)
	if err != nil {
		return rating.Rating{}, ErrInternal
	}
	if exists {
		return rating.Rating{}, ErrAlreadyRated
	}

	created, err := r.ratings.Create(ctx, rating.Rating{
		ID:       uuid.New(),
		SwapID:   in.SwapID,
		RaterID:  raterID,
		RateeID:  s.CounterpartyOf(raterID),
		Score:    in.Score,
		Feedback: in.Feedback,
	})
	if err != nil {
		// Two racing ratings from the same rater: the existence check above
		// passed for both, UNIQUE(swap_id, rater_id) rejects the loser.
		if isUniqueViolation(err) {
			return rating.Rating{}, ErrAlreadyRated
		}
		return rating.Rating{}, ErrInternal
	}
	return created, nil
}

func (r *Rating) ListForUser(ctx context.Context, userID uuid.UUID) (UserRatings, error) {
	list, err := r.ratings.ListByRatee(ctx, userID)
	if err != nil {
		return UserRatings{}, ErrInternal
	}
	avg, err := r.ratings.AverageForRatee(ctx, userID)
	if err != nil {
		return UserRatings{}, ErrInternal
	}
	return UserRatings{Ratings: list, Average: avg}, nil
}
