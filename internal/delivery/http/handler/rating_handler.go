package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type RatingHandler struct {
	uc usecase.RatingUsecase
}

type createRatingRequest struct {
	SwapID   uuid.UUID `json:"swap_id"`
	Score    int       `json:"score"`
	Feedback string    `json:"feedback"`
}

func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

func (h *RatingHandler) RegisterProtectedRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/ratings", auth, h.Create)
}

// RegisterPublicRoutes mounts the per-user rating list; reputations are
// visible to anonymous browsers.
func (h *RatingHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/:id/ratings", h.ListForUser)
}

func (h *RatingHandler) Create(c fiber.Ctx) error {
	raterID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createRatingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), raterID, usecase.CreateRatingInput{
		SwapID:   req.SwapID,
		Score:    req.Score,
		Feedback: req.Feedback,
	})
	if err != nil {
		return mapRatingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewRatingResponse(created))
}

func (h *RatingHandler) ListForUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	ratings, err := h.uc.ListForUser(c.Context(), userID)
	if err != nil {
		return mapRatingUsecaseError(err)
	}

	res := make([]dto.RatingResponse, 0, len(ratings.Ratings))
	for _, r := range ratings.Ratings {
		res = append(res, dto.NewRatingResponse(r))
	}
	data := map[string]any{
		"ratings":        res,
		"average_rating": ratings.Average,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapRatingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSwapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	case errors.Is(err, usecase.ErrNotRatingParty):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a party to this swap request", nil, err)
	case errors.Is(err, usecase.ErrSwapNotCompleted):
		return middleware.NewAppError(fiber.StatusConflict, "Swap request is not completed", nil, err)
	case errors.Is(err, usecase.ErrAlreadyRated):
		return middleware.NewAppError(fiber.StatusConflict, "Swap already rated", nil, err)
	case errors.Is(err, usecase.ErrInvalidScore):
		return middleware.NewAppError(fiber.StatusBadRequest, "Score must be between 1 and 5", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
