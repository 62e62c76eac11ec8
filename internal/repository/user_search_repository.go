package repository

import (
	"context"
	"fmt"
	"strings"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/user"
)

type UserSearchFilter struct {
	Query    string
	Category string
	Location string
	Limit    int
	Offset   int
}

type UserSearchRepository interface {
	SearchActiveUsers(ctx context.Context, f UserSearchFilter) ([]user.User, int, error)
}

type PostgresUserSearchRepository struct {
	db database.DB
}

func NewPostgresUserSearchRepository(db database.DB) *PostgresUserSearchRepository {
	return &PostgresUserSearchRepository{db: db}
}

// SearchActiveUsers filters active users by free-text query over name and
// location, optionally by the category of a skill they offer, with
// offset pagination and a total count for the same predicate.
func (r *PostgresUserSearchRepository) SearchActiveUsers(ctx context.Context, f UserSearchFilter) ([]user.User, int, error) {
	where := []string{"u.is_active"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		p := arg("%" + q + "%")
		where = append(where, fmt.Sprintf(
			"(u.first_name ILIKE %s OR u.last_name ILIKE %s OR u.location ILIKE %s)", p, p, p,
		))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, fmt.Sprintf("u.location ILIKE %s", arg("%"+loc+"%")))
	}
	if cat := strings.TrimSpace(f.Category); cat != "" {
		where = append(where, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM user_skills_offered uso
				JOIN skills s ON s.id = uso.skill_id
				WHERE uso.user_id = u.id AND uso.is_active AND s.category = %s
			)`, arg(cat),
		))
	}

	cond := strings.Join(where, " AND ")

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users u WHERE `+cond, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	listArgs := append(append([]any{}, args...), f.Limit, f.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM users u WHERE %s ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d`,
		userColumns, cond, len(args)+1, len(args)+2,
	)

	rows, err := r.db.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.ProfileImageURL, &u.Location, &u.Bio, &u.IsActive, &u.EmailVerified,
			&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
