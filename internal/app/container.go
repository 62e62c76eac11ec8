package app

import (
	"context"
	"database/sql"
	"log"
	"time"

	"skill-swap/internal/config"
	"skill-swap/internal/database"
	"skill-swap/internal/database/migration"
	dbpostgres "skill-swap/internal/database/postgres"
	"skill-swap/internal/database/seeder"
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	v1 "skill-swap/internal/delivery/http/routes/v1"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"
	"skill-swap/internal/ws"
)

// Container owns every long-lived dependency and the wiring between them.
type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
	JWT    jwt.Service
	Hub    *ws.Hub

	Handlers v1.Handlers
	Health   *handler.HealthHandler
	WSHandle *ws.Handler
	AuthMw   *middleware.AuthMiddleware
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, cfg, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runSeeders(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	hub := ws.NewHub(logger)
	go hub.Run()

	notifier := ws.NewUserNotifier(hub, logger)

	userRepo := repository.NewPostgresUserRepository(db)
	searchRepo := repository.NewPostgresUserSearchRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	swapRepo := repository.NewPostgresSwapRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, userSkillRepo, ratingRepo, redis)
	searchUC := usecase.NewSearchUsecase(searchRepo, redis)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo, redis)
	swapUC := usecase.NewSwapUsecase(swapRepo, userRepo, skillRepo, notifier, logger)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, swapRepo)

	c := &Container{
		Config: cfg,
		DB:     db,
		Redis:  redis,
		JWT:    jwtSvc,
		Hub:    hub,
	}

	c.AuthMw = middleware.NewAuthMiddleware(jwtSvc)
	c.Health = handler.NewHealthHandler(db, redis)
	c.WSHandle = ws.NewHandler(hub, jwtSvc, logger)
	c.Handlers = v1.Handlers{
		Auth:      handler.NewAuthHandler(authUC),
		User:      handler.NewUserHandler(userUC, searchUC),
		Skill:     handler.NewSkillHandler(skillUC),
		UserSkill: handler.NewUserSkillHandler(userSkillUC),
		Swap:      handler.NewSwapHandler(swapUC),
		Rating:    handler.NewRatingHandler(ratingUC),
	}

	return c, nil
}

func runMigrations(ctx context.Context, cfg config.Config, db database.DB) error {
	sqlDB := databaseSQL(db)
	if sqlDB == nil {
		return nil
	}
	return migration.Runner{Dir: cfg.Database.MigrationsDir}.Run(ctx, sqlDB)
}

// databaseSQL unwraps a *sql.DB when the driver exposes one. The migration
// runner needs database/sql transactions, not the pool wrapper.
func databaseSQL(db database.DB) *sql.DB {
	type sqlProvider interface {
		SQLDB() *sql.DB
	}
	if p, ok := db.(sqlProvider); ok {
		return p.SQLDB()
	}
	return nil
}

func runSeeders(ctx context.Context, db database.DB) error {
	return seeder.Runner{Seeders: seeder.Defaults()}.Run(ctx, db)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
