package handler

import (
	"errors"
	"time"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SwapHandler struct {
	uc usecase.SwapUsecase
}

type createSwapRequest struct {
	TargetID         uuid.UUID  `json:"target_id"`
	RequesterSkillID *uuid.UUID `json:"requester_skill_id"`
	TargetSkillID    *uuid.UUID `json:"target_skill_id"`
	Message          string     `json:"message"`
	ScheduledAt      *time.Time `json:"scheduled_at"`
}

type updateSwapStatusRequest struct {
	Status string `json:"status"`
}

func NewSwapHandler(uc usecase.SwapUsecase) *SwapHandler {
	return &SwapHandler{uc: uc}
}

func (h *SwapHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	grp := r.Group("/swaps", auth)
	grp.Post("/", h.Create)
	grp.Get("/sent", h.ListSent)
	grp.Get("/received", h.ListReceived)
	grp.Patch("/:id/status", h.UpdateStatus)
}

func (h *SwapHandler) Create(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createSwapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Create(c.Context(), callerID, usecase.CreateSwapInput{
		TargetID:         req.TargetID,
		RequesterSkillID: req.RequesterSkillID,
		TargetSkillID:    req.TargetSkillID,
		Message:          req.Message,
		ScheduledAt:      req.ScheduledAt,
	})
	if err != nil {
		return mapSwapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewSwapResponse(created))
}

func (h *SwapHandler) ListSent(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swaps, err := h.uc.ListSent(c.Context(), callerID)
	if err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSwapListResponse(swaps))
}

func (h *SwapHandler) ListReceived(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swaps, err := h.uc.ListReceived(c.Context(), callerID)
	if err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSwapListResponse(swaps))
}

func (h *SwapHandler) UpdateStatus(c fiber.Ctx) error {
	callerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swapID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid swap id", nil, err)
	}

	var req updateSwapStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.uc.UpdateStatus(c.Context(), swapID, swap.Status(req.Status), callerID)
	if err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSwapResponse(updated))
}

func mapSwapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSwapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	case errors.Is(err, usecase.ErrTargetNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Target user not found", nil, err)
	case errors.Is(err, usecase.ErrSwapSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSelfSwap):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot request a swap with yourself", nil, err)
	case errors.Is(err, swap.ErrNotParty):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a party to this swap request", nil, err)
	case errors.Is(err, swap.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Status transition not allowed", nil, err)
	case errors.Is(err, usecase.ErrSwapConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Swap request was updated concurrently", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
