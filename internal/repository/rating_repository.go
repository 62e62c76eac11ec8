package repository

import (
	"context"

	"github.com/google/uuid"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/rating"
)

type RatingRepository interface {
	Create(ctx context.Context, rt rating.Rating) (rating.Rating, error)
	ExistsBySwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (bool, error)
	ListByRatee(ctx context.Context, rateeID uuid.UUID) ([]rating.Rating, error)
	AverageForRatee(ctx context.Context, rateeID uuid.UUID) (float64, error)
}

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Create(ctx context.Context, rt rating.Rating) (rating.Rating, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO ratings (id, swap_id, rater_id, ratee_id, score, feedback)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, swap_id, rater_id, ratee_id, score, feedback, created_at`,
		rt.ID, rt.SwapID, rt.RaterID, rt.RateeID, rt.Score, rt.Feedback,
	)
	var created rating.Rating
	if err := row.Scan(&created.ID, &created.SwapID, &created.RaterID, &created.RateeID, &created.Score, &created.Feedback, &created.CreatedAt); err != nil {
		return rating.Rating{}, err
	}
	return created, nil
}

func (r *PostgresRatingRepository) ExistsBySwapAndRater(ctx context.Context, swapID, raterID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ratings WHERE swap_id = $1 AND rater_id = $2)`,
		swapID, raterID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresRatingRepository) ListByRatee(ctx context.Context, rateeID uuid.UUID) ([]rating.Rating, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, swap_id, rater_id, ratee_id, score, feedback, created_at
		 FROM ratings
		 WHERE ratee_id = $1
		 ORDER BY created_at DESC`,
		rateeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]rating.Rating, 0)
	for rows.Next() {
		var rt rating.Rating
		if err := rows.Scan(&rt.ID, &rt.SwapID, &rt.RaterID, &rt.RateeID, &rt.Score, &rt.Feedback, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRatingRepository) AverageForRatee(ctx context.Context, rateeID uuid.UUID) (float64, error) {
	var avg float64
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(score), 0) FROM ratings WHERE ratee_id = $1`,
		rateeID,
	)
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}
