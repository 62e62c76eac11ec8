package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/swap"
)

var (
	ErrSwapNotFound = errors.New("swap request not found")
	// ErrSwapStatusChanged: the row's status no longer matches the status the
	// transition was validated against; a concurrent transition won.
	ErrSwapStatusChanged = errors.New("swap status changed concurrently")
)

type SwapRepository interface {
	Create(ctx context.Context, s swap.SwapRequest) (swap.SwapRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (swap.SwapRequest, error)
	ListByRequester(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error)
	ListByTarget(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error)
	// UpdateStatusFrom transitions id from `from` to `to` only if the stored
	// status still equals `from`, and returns the updated record.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to swap.Status) (swap.SwapRequest, error)
}

type PostgresSwapRepository struct {
	db database.DB
}

func NewPostgresSwapRepository(db database.DB) *PostgresSwapRepository {
	return &PostgresSwapRepository{db: db}
}

const swapColumns = `id, requester_id, target_id, requester_skill_id, target_skill_id,
	message, status, scheduled_at, notes, created_at, updated_at`

func (r *PostgresSwapRepository) Create(ctx context.Context, s swap.SwapRequest) (swap.SwapRequest, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO swap_requests (id, requester_id, target_id, requester_skill_id, target_skill_id, message, scheduled_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+swapColumns,
		s.ID, s.RequesterID, s.TargetID, s.RequesterSkillID, s.TargetSkillID, s.Message, s.ScheduledAt, s.Notes,
	)
	return scanSwap(row)
}

func (r *PostgresSwapRepository) GetByID(ctx context.Context, id uuid.UUID) (swap.SwapRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+swapColumns+` FROM swap_requests WHERE id = $1`, id)
	return scanSwap(row)
}

func (r *PostgresSwapRepository) ListByRequester(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error) {
	return r.list(ctx, `requester_id`, userID)
}

func (r *PostgresSwapRepository) ListByTarget(ctx context.Context, userID uuid.UUID) ([]swap.SwapRequest, error) {
	return r.list(ctx, `target_id`, userID)
}

func (r *PostgresSwapRepository) list(ctx context.Context, column string, userID uuid.UUID) ([]swap.SwapRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+swapColumns+` FROM swap_requests WHERE `+column+` = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]swap.SwapRequest, 0)
	for rows.Next() {
		s, err := scanSwap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSwapRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to swap.Status) (swap.SwapRequest, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE swap_requests
		 SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+swapColumns,
		id, from, to,
	)
	s, err := scanSwap(row)
	if err != nil {
		if errors.Is(err, ErrSwapNotFound) {
			// Row absent or its status moved under us; disambiguate.
			exists, exErr := r.exists(ctx, id)
			if exErr == nil && exists {
				return swap.SwapRequest{}, ErrSwapStatusChanged
			}
			return swap.SwapRequest{}, ErrSwapNotFound
		}
		return swap.SwapRequest{}, err
	}
	return s, nil
}

func (r *PostgresSwapRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM swap_requests WHERE id = $1)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanSwap(row database.Row) (swap.SwapRequest, error) {
	var s swap.SwapRequest
	err := row.Scan(
		&s.ID, &s.RequesterID, &s.TargetID, &s.RequesterSkillID, &s.TargetSkillID,
		&s.Message, &s.Status, &s.ScheduledAt, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.SwapRequest{}, ErrSwapNotFound
		}
		return swap.SwapRequest{}, err
	}
	return s, nil
}
