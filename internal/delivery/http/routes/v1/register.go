package v1

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers bundles every handler mounted under /api/v1.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Skill     *handler.SkillHandler
	UserSkill *handler.UserSkillHandler
	Swap      *handler.SwapHandler
	Rating    *handler.RatingHandler
}

// Register mounts the v1 surface. Browsing endpoints (skill catalog, user
// search, public profiles, rating lists) stay reachable without a token;
// anything acting as a user carries the Bearer middleware on its route.
//
// Protected routes are mounted first so /users/me wins over the public
// /users/:id wildcard. The middleware is attached per route or per
// fully-protected prefix; /users and /skills mix public and authenticated
// endpoints under one prefix, so a blanket group would shadow the public
// ones.
func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	if authMw != nil {
		auth := authMw.Middleware()

		if h.User != nil {
			h.User.RegisterProtectedRoutes(r, auth)
		}
		if h.UserSkill != nil {
			h.UserSkill.RegisterRoutes(r, auth)
		}
		if h.Skill != nil {
			h.Skill.RegisterProtectedRoutes(r, auth)
		}
		if h.Swap != nil {
			h.Swap.RegisterRoutes(r, auth)
		}
		if h.Rating != nil {
			h.Rating.RegisterProtectedRoutes(r, auth)
		}
	}

	if h.User != nil {
		h.User.RegisterPublicRoutes(r)
	}
	if h.Skill != nil {
		h.Skill.RegisterPublicRoutes(r)
	}
	if h.Rating != nil {
		h.Rating.RegisterPublicRoutes(r)
	}
}
