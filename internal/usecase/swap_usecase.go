package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"
)

var (
	ErrSwapNotFound      = errors.New("swap request not found")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrSwapSkillNotFound = errors.New("referenced skill not found")
	ErrSelfSwap          = errors.New("cannot request a swap with yourself")
	// ErrSwapConflict: a concurrent transition on the same swap won the race.
	ErrSwapConflict = errors.New("swap request changed concurrently")
)

const (
	EventNewSwapRequest   = "new_swap_request"
	EventSwapStatusUpdate = "swap_status_update"
)

// Notifier is the push channel keyed by user id. Implementations must not
// block; delivery is at-most-once and failures stay inside the notifier.
type Notifier interface {
	SendToUser(userID uuid.UUID, eventType string, data any)
}

type CreateSwapInput struct {
	TargetID         uuid.UUID
	RequesterSkillID *uuid.UUID
	TargetSkillID    *uuid.UUID
	Message          string
	ScheduledAt      *time.Time
}

type SwapUsecase interface {
	Create(ctx context.Context, requesterID uuid.UUID, in CreateSwapInput) (swap.SwapRequest, error)
	ListSent(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error)
	ListReceived(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error)
	UpdateStatus(ctx context.Context, swapID uuid.UUID, requested swap.Status, callerID uuid.UUID) (swap.SwapRequest, error)
}

type Swap struct {
	swaps    repository.SwapRepository
	users    user.Repository
	skills   repository.SkillRepository
	notifier Notifier
	logger   *log.Logger
}

func NewSwapUsecase(
	swaps repository.SwapRepository,
	users user.Repository,
	skills repository.SkillRepository,
	notifier Notifier,
	logger *log.Logger,
) *Swap {
	return &Swap{swaps: swaps, users: users, skills: skills, notifier: notifier, logger: logger}
}

func (u *Swap) Create(ctx context.Context, requesterID uuid.UUID, in CreateSwapInput) (swap.SwapRequest, error) {
	if requesterID == uuid.Nil || in.TargetID == uuid.Nil {
		return swap.SwapRequest{}, ErrInvalidInput
	}
	if in.TargetID == requesterID {
		return swap.SwapRequest{}, ErrSelfSwap
	}

	active, err := u.users.ExistsActive(ctx, in.TargetID)
	if err != nil {
		return swap.SwapRequest{}, ErrInternal
	}
	if !active {
		return swap.SwapRequest{}, ErrTargetNotFound
	}

	for _, skillID := range []*uuid.UUID{in.RequesterSkillID, in.TargetSkillID} {
		if skillID == nil {
			continue
		}
		if *skillID == uuid.Nil {
			return swap.SwapRequest{}, ErrInvalidInput
		}
		exists, err := u.skills.ExistsByID(ctx, *skillID)
		if err != nil {
			return swap.SwapRequest{}, ErrInternal
		}
		if !exists {
			return swap.SwapRequest{}, ErrSwapSkillNotFound
		}
	}

	created, err := u.swaps.Create(ctx, swap.SwapRequest{
		ID:               uuid.New(),
		RequesterID:      requesterID,
		TargetID:         in.TargetID,
		RequesterSkillID: in.RequesterSkillID,
		TargetSkillID:    in.TargetSkillID,
		Message:          in.Message,
		ScheduledAt:      in.ScheduledAt,
	})
	if err != nil {
		return swap.SwapRequest{}, ErrInternal
	}

	u.notify(created.TargetID, EventNewSwapRequest, created)

	return created, nil
}

func (u *Swap) ListSent(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error) {
	out, err := u.swaps.ListByRequester(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Swap) ListReceived(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error) {
	out, err := u.swaps.ListByTarget(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// UpdateStatus validates the requested transition against the record's
// current status and the caller's role, then persists it conditionally on
// that same status so concurrent transitions cannot both win.
func (u *Swap) UpdateStatus(ctx context.Context, swapID uuid.UUID, requested swap.Status, callerID uuid.UUID) (swap.SwapRequest, error) {
	if !requested.Valid() {
		return swap.SwapRequest{}, ErrInvalidInput
	}

	current, err := u.swaps.GetByID(ctx, swapID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return swap.SwapRequest{}, ErrSwapNotFound
		}
		return swap.SwapRequest{}, ErrInternal
	}

	if err := swap.Authorize(current.Status, requested, current.RoleOf(callerID)); err != nil {
		return swap.SwapRequest{}, err
	}

	updated, err := u.swaps.UpdateStatusFrom(ctx, swapID, current.Status, requested)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSwapStatusChanged):
			return swap.SwapRequest{}, ErrSwapConflict
		case errors.Is(err, repository.ErrSwapNotFound):
			return swap.SwapRequest{}, ErrSwapNotFound
		default:
			return swap.SwapRequest{}, ErrInternal
		}
	}

	u.notify(updated.CounterpartyOf(callerID), EventSwapStatusUpdate, updated)

	return updated, nil
}

func (u *Swap) notify(userID uuid.UUID, eventType string, data any) {
	if u.notifier == nil {
		if u.logger != nil {
			u.logger.Printf("swap notify skipped | user_id=%s type=%s reason=no_notifier", userID, eventType)
		}
		return
	}
	u.notifier.SendToUser(userID, eventType, data)
}
