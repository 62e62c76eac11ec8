package handler

import (
	"errors"
	"strconv"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	users  usecase.UserUsecase
	search usecase.SearchUsecase
}

type updateProfileRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	Location        string `json:"location"`
	Bio             string `json:"bio"`
}

func NewUserHandler(users usecase.UserUsecase, search usecase.SearchUsecase) *UserHandler {
	return &UserHandler{users: users, search: search}
}

// RegisterProtectedRoutes mounts the caller's own profile. It must run
// before RegisterPublicRoutes so /users/me is matched ahead of /users/:id.
// The token check rides on each route; /users also carries public paths.
func (h *UserHandler) RegisterProtectedRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/users/me", auth, h.MyProfile)
	r.Put("/users/me", auth, h.UpdateProfile)
}

// RegisterPublicRoutes mounts search and public profiles; anonymous
// visitors can browse users before registering.
func (h *UserHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/search", h.Search)
	r.Get("/users/:id", h.PublicProfile)
}

func (h *UserHandler) MyProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	profile, err := h.users.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileData(profile, dto.NewUserResponse(profile.User)))
}

func (h *UserHandler) PublicProfile(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	profile, err := h.users.GetProfile(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileData(profile, dto.NewPublicUserResponse(profile.User)))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.users.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
		Location:        req.Location,
		Bio:             req.Bio,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(updated))
}

func (h *UserHandler) Search(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "0"))

	result, err := h.search.SearchUsers(c.Context(), usecase.SearchUsersParams{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, result)
}

func profileData(p usecase.UserProfile, usr dto.UserResponse) map[string]any {
	offered := make([]dto.OfferedSkillResponse, 0, len(p.SkillsOffered))
	for _, o := range p.SkillsOffered {
		offered = append(offered, dto.NewOfferedSkillResponse(o))
	}
	wanted := make([]dto.WantedSkillResponse, 0, len(p.SkillsWanted))
	for _, w := range p.SkillsWanted {
		wanted = append(wanted, dto.NewWantedSkillResponse(w))
	}

	return map[string]any{
		"user":           usr,
		"skills_offered": offered,
		"skills_wanted":  wanted,
		"average_rating": p.AverageRating,
	}
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
