package handler

import (
	"context"
	"time"

	"skill-swap/internal/database"
	"skill-swap/internal/infrastructure/cache"
	"skill-swap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	redis *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	checks := map[string]string{}

	dbStatus := "ok"
	if h.db == nil {
		dbStatus = "not configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = "unavailable"
		}
	}
	checks["database"] = dbStatus

	redisStatus := "ok"
	if h.redis == nil || !h.redis.Enabled() {
		redisStatus = "disabled"
	} else {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "unavailable"
		}
	}
	checks["redis"] = redisStatus

	status := fiber.StatusOK
	if dbStatus == "unavailable" {
		status = fiber.StatusServiceUnavailable
	}
	return response.Success(c, status, response.DefaultMessageForStatus(status), checks)
}
