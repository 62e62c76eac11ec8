package handler

import (
	"context"
	"errors"

	"skill-swap/internal/delivery/http/dto"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addOfferedSkillRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Proficiency string    `json:"proficiency_level"`
	Description string    `json:"description"`
}

type addWantedSkillRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Urgency     string    `json:"urgency_level"`
	Description string    `json:"description"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	offered := r.Group("/users/me/skills/offered", auth)
	offered.Get("/", h.ListOffered)
	offered.Post("/", h.AddOffered)
	offered.Delete("/:skillId", h.RemoveOffered)

	wanted := r.Group("/users/me/skills/wanted", auth)
	wanted.Get("/", h.ListWanted)
	wanted.Post("/", h.AddWanted)
	wanted.Delete("/:skillId", h.RemoveWanted)
}

func (h *UserSkillHandler) ListOffered(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListOffered(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	res := make([]dto.OfferedSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewOfferedSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) ListWanted(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListWanted(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	res := make([]dto.WantedSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewWantedSkillResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *UserSkillHandler) AddOffered(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addOfferedSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddOffered(c.Context(), userID, usecase.AddOfferedSkillInput{
		SkillID:     req.SkillID,
		Proficiency: skill.ProficiencyLevel(req.Proficiency),
		Description: req.Description,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewOfferedSkillResponse(created))
}

func (h *UserSkillHandler) AddWanted(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addWantedSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.AddWanted(c.Context(), userID, usecase.AddWantedSkillInput{
		SkillID:     req.SkillID,
		Urgency:     skill.UrgencyLevel(req.Urgency),
		Description: req.Description,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewWantedSkillResponse(created))
}

func (h *UserSkillHandler) RemoveOffered(c fiber.Ctx) error {
	return h.remove(c, h.uc.RemoveOffered)
}

func (h *UserSkillHandler) RemoveWanted(c fiber.Ctx) error {
	return h.remove(c, h.uc.RemoveWanted)
}

func (h *UserSkillHandler) remove(c fiber.Ctx, fn func(ctx context.Context, userID, skillID uuid.UUID) error) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
	}

	if err := fn(c.Context(), userID, skillID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid proficiency level", nil, err)
	case errors.Is(err, usecase.ErrInvalidUrgency):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid urgency level", nil, err)
	case errors.Is(err, usecase.ErrUserSkillExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already listed", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
