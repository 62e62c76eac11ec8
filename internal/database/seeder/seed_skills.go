package seeder

import (
	"context"

	"skill-swap/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "description", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Guitar", Category: "Music"},
		{Name: "Piano", Category: "Music"},
		{Name: "Singing", Category: "Music"},
		{Name: "Spanish", Category: "Language"},
		{Name: "French", Category: "Language"},
		{Name: "Mandarin", Category: "Language"},
		{Name: "Cooking", Category: "Culinary"},
		{Name: "Baking", Category: "Culinary"},
		{Name: "Photography", Category: "Creative"},
		{Name: "Graphic Design", Category: "Creative"},
		{Name: "Drawing", Category: "Creative"},
		{Name: "Web Development", Category: "Technology"},
		{Name: "Data Analysis", Category: "Technology"},
		{Name: "Yoga", Category: "Fitness"},
		{Name: "Personal Training", Category: "Fitness"},
		{Name: "Public Speaking", Category: "Professional"},
		{Name: "Writing", Category: "Professional"},
		{Name: "Gardening", Category: "Home"},
		{Name: "Carpentry", Category: "Home"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
