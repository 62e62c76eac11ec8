package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"skill-swap/internal/domain/rating"
	"skill-swap/internal/domain/swap"
)

type memRatingRepo struct {
	byID map[uuid.UUID]rating.Rating
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{byID: map[uuid.UUID]rating.Rating{}}
}

func (m *memRatingRepo) Create(_ context.Context, rt rating.Rating) (rating.Rating, error) {
	rt.CreatedAt = time.Now().UTC()
	m.byID[rt.ID] = rt
	return rt, nil
}

func (m *memRatingRepo) ExistsBySwapAndRater(_ context.Context, swapID, raterID uuid.UUID) (bool, error) {
	for _, rt := range m.byID {
		if rt.SwapID == swapID && rt.RaterID == raterID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRatingRepo) ListByRatee(_ context.Context, rateeID uuid.UUID) ([]rating.Rating, error) {
	out := []rating.Rating{}
	for _, rt := range m.byID {
		if rt.RateeID == rateeID {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m *memRatingRepo) AverageForRatee(ctx context.Context, rateeID uuid.UUID) (float64, error) {
	list, _ := m.ListByRatee(ctx, rateeID)
	if len(list) == 0 {
		return 0, nil
	}
	sum := 0
	for _, rt := range list {
		sum += rt.Score
	}
	return float64(sum) / float64(len(list)), nil
}

func ratingFixture(t *testing.T, status swap.Status) (*Rating, *memSwapRepo, swap.SwapRequest) {
	t.Helper()

	swaps := newMemSwapRepo()
	s := swap.SwapRequest{
		ID:          uuid.New(),
		RequesterID: uuid.New(),
		TargetID:    uuid.New(),
		Status:      status,
	}
	swaps.byID[s.ID] = s

	return NewRatingUsecase(newMemRatingRepo(), swaps), swaps, s
}

func TestRatingCreate_CompletedSwapByParty(t *testing.T) {
	uc, _, s := ratingFixture(t, swap.StatusCompleted)

	created, err := uc.Create(context.Background(), s.RequesterID, CreateRatingInput{
		SwapID:   s.ID,
		Score:    5,
		Feedback: "great teacher",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.RateeID != s.TargetID {
		t.Fatalf("ratee = %s, want target %s", created.RateeID, s.TargetID)
	}

	got, err := uc.ListForUser(context.Background(), s.TargetID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got.Ratings) != 1 || got.Average != 5 {
		t.Fatalf("ratings = %+v", got)
	}
}

func TestRatingCreate_NotCompleted(t *testing.T) {
	for _, status := range []swap.Status{swap.StatusPending, swap.StatusAccepted, swap.StatusRejected, swap.StatusCancelled} {
		uc, _, s := ratingFixture(t, status)
		_, err := uc.Create(context.Background(), s.RequesterID, CreateRatingInput{SwapID: s.ID, Score: 4})
		if !errors.Is(err, ErrSwapNotCompleted) {
			t.Fatalf("status %s: expected ErrSwapNotCompleted, got %v", status, err)
		}
	}
}

func TestRatingCreate_NonParty(t *testing.T) {
	uc, _, s := ratingFixture(t, swap.StatusCompleted)
	_, err := uc.Create(context.Background(), uuid.New(), CreateRatingInput{SwapID: s.ID, Score: 4})
	if !errors.Is(err, ErrNotRatingParty) {
		t.Fatalf("expected ErrNotRatingParty, got %v", err)
	}
}

func TestRatingCreate_DuplicateRejected(t *testing.T) {
	uc, _, s := ratingFixture(t, swap.StatusCompleted)

	if _, err := uc.Create(context.Background(), s.TargetID, CreateRatingInput{SwapID: s.ID, Score: 3}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := uc.Create(context.Background(), s.TargetID, CreateRatingInput{SwapID: s.ID, Score: 4})
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	// The other party can still rate.
	if _, err := uc.Create(context.Background(), s.RequesterID, CreateRatingInput{SwapID: s.ID, Score: 5}); err != nil {
		t.Fatalf("counterparty create: %v", err)
	}
}

func TestRatingCreate_ScoreBounds(t *testing.T) {
	uc, _, s := ratingFixture(t, swap.StatusCompleted)
	for _, score := range []int{0, -1, 6, 100} {
		_, err := uc.Create(context.Background(), s.RequesterID, CreateRatingInput{SwapID: s.ID, Score: score})
		if !errors.Is(err, ErrInvalidScore) {
			t.Fatalf("score %d: expected ErrInvalidScore, got %v", score, err)
		}
	}
}

type uniqueViolationRatingRepo struct {
	*memRatingRepo
}

func (u uniqueViolationRatingRepo) Create(context.Context, rating.Rating) (rating.Rating, error) {
	return rating.Rating{}, &pgconn.PgError{Code: "23505", ConstraintName: "ratings_swap_id_rater_id_key"}
}

func TestRatingCreate_LostInsertRaceIsAlreadyRated(t *testing.T) {
	swaps := newMemSwapRepo()
	s := swap.SwapRequest{
		ID:          uuid.New(),
		RequesterID: uuid.New(),
		TargetID:    uuid.New(),
		Status:      swap.StatusCompleted,
	}
	swaps.byID[s.ID] = s

	// The existence check sees nothing, the insert then loses to the unique
	// constraint. That must surface as a duplicate, not an internal error.
	uc := NewRatingUsecase(uniqueViolationRatingRepo{newMemRatingRepo()}, swaps)

	_, err := uc.Create(context.Background(), s.RequesterID, CreateRatingInput{SwapID: s.ID, Score: 4})
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
}

func TestRatingCreate_UnknownSwap(t *testing.T) {
	uc, _, _ := ratingFixture(t, swap.StatusCompleted)
	_, err := uc.Create(context.Background(), uuid.New(), CreateRatingInput{SwapID: uuid.New(), Score: 3})
	if !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}
