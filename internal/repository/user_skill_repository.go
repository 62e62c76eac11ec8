package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkillRepository interface {
	ListOffered(ctx context.Context, userID uuid.UUID) ([]skill.OfferedSkill, error)
	ListWanted(ctx context.Context, userID uuid.UUID) ([]skill.WantedSkill, error)
	AddOffered(ctx context.Context, os skill.OfferedSkill) (skill.OfferedSkill, error)
	AddWanted(ctx context.Context, ws skill.WantedSkill) (skill.WantedSkill, error)
	RemoveOffered(ctx context.Context, userID, skillID uuid.UUID) error
	RemoveWanted(ctx context.Context, userID, skillID uuid.UUID) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) ListOffered(ctx context.Context, userID uuid.UUID) ([]skill.OfferedSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT uso.id, uso.user_id, uso.skill_id, uso.proficiency_level, uso.description, uso.is_active, uso.created_at,
		        s.id, s.name, s.category, s.description, s.is_approved, s.created_at
		 FROM user_skills_offered uso
		 JOIN skills s ON s.id = uso.skill_id
		 WHERE uso.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.OfferedSkill, 0)
	for rows.Next() {
		var o skill.OfferedSkill
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.SkillID, &o.Proficiency, &o.Description, &o.IsActive, &o.CreatedAt,
			&o.Skill.ID, &o.Skill.Name, &o.Skill.Category, &o.Skill.Description, &o.Skill.IsApproved, &o.Skill.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) ListWanted(ctx context.Context, userID uuid.UUID) ([]skill.WantedSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT usw.id, usw.user_id, usw.skill_id, usw.urgency_level, usw.description, usw.is_active, usw.created_at,
		        s.id, s.name, s.category, s.description, s.is_approved, s.created_at
		 FROM user_skills_wanted usw
		 JOIN skills s ON s.id = usw.skill_id
		 WHERE usw.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.WantedSkill, 0)
	for rows.Next() {
		var w skill.WantedSkill
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.SkillID, &w.Urgency, &w.Description, &w.IsActive, &w.CreatedAt,
			&w.Skill.ID, &w.Skill.Name, &w.Skill.Category, &w.Skill.Description, &w.Skill.IsApproved, &w.Skill.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) AddOffered(ctx context.Context, os skill.OfferedSkill) (skill.OfferedSkill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_skills_offered (id, user_id, skill_id, proficiency_level, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, skill_id, proficiency_level, description, is_active, created_at`,
		os.ID, os.UserID, os.SkillID, os.Proficiency, os.Description,
	)
	var created skill.OfferedSkill
	if err := row.Scan(&created.ID, &created.UserID, &created.SkillID, &created.Proficiency, &created.Description, &created.IsActive, &created.CreatedAt); err != nil {
		return skill.OfferedSkill{}, err
	}
	return created, nil
}

func (r *PostgresUserSkillRepository) AddWanted(ctx context.Context, ws skill.WantedSkill) (skill.WantedSkill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_skills_wanted (id, user_id, skill_id, urgency_level, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, skill_id, urgency_level, description, is_active, created_at`,
		ws.ID, ws.UserID, ws.SkillID, ws.Urgency, ws.Description,
	)
	var created skill.WantedSkill
	if err := row.Scan(&created.ID, &created.UserID, &created.SkillID, &created.Urgency, &created.Description, &created.IsActive, &created.CreatedAt); err != nil {
		return skill.WantedSkill{}, err
	}
	return created, nil
}

func (r *PostgresUserSkillRepository) RemoveOffered(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills_offered WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}

func (r *PostgresUserSkillRepository) RemoveWanted(ctx context.Context, userID, skillID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills_wanted WHERE user_id = $1 AND skill_id = $2`,
		userID, skillID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}
