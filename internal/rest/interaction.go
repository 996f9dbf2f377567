package rest

import (
	"context"
	"net/http"
	"time"

	"botmart/domain"
	"botmart/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type InteractionService interface {
	RecordInteraction(ctx context.Context, interaction *domain.Interaction) (domain.Interaction, error)
	GetInteractionsByUser(ctx context.Context, userID uint) ([]domain.Interaction, error)
}

type InteractionHandler struct {
	interactionService InteractionService
	validator          *validator.Validate
	timeout            time.Duration
}

func NewInteractionHandler(interactionService InteractionService) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
		validator:          validator.New(),
		timeout:            10 * time.Second,
	}
}

type RecordInteractionRequest struct {
	BotID           uint64                 `json:"bot_id" validate:"required"`
	EventType       string                 `json:"event_type" validate:"required,oneof=view hover click time_on_page"`
	DurationSeconds float64                `json:"duration_seconds" validate:"gte=0"`
	Context         map[string]interface{} `json:"context"`
}

func (h *InteractionHandler) RecordInteraction(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req RecordInteractionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate interaction request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	interaction, err := h.interactionService.RecordInteraction(ctx, &domain.Interaction{
		UserID:          userID,
		BotID:           req.BotID,
		EventType:       req.EventType,
		DurationSeconds: req.DurationSeconds,
		Context:         req.Context,
	})
	if err != nil {
		logger.Error("Failed to record interaction", err)
		if err.Error() == "bot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "unknown event type" || err.Error() == "duration cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "interaction recorded",
		"interaction": interaction,
	})
}

func (h *InteractionHandler) GetMyInteractions(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	interactions, err := h.interactionService.GetInteractionsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get interactions by user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully get interactions by user",
		"interactions": interactions,
	})
}
