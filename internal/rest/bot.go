package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"botmart/domain"
	"botmart/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type BotService interface {
	CreateBot(ctx context.Context, bot *domain.Bot) (domain.Bot, error)
	GetBotByID(ctx context.Context, id uint64) (domain.Bot, error)
	GetApprovedBots(ctx context.Context) ([]domain.Bot, error)
	GetAllBots(ctx context.Context) ([]domain.Bot, error)
	UpdateBot(ctx context.Context, id uint64, developerID uint, updateData *domain.Bot) (domain.Bot, error)
	ApproveBot(ctx context.Context, id uint64) error
	RejectBot(ctx context.Context, id uint64) error
	DeleteBot(ctx context.Context, id uint64, developerID uint, isAdmin bool) error
}

type BotHandler struct {
	botService BotService
	validator  *validator.Validate
	timeout    time.Duration
}

func NewBotHandler(botService BotService) *BotHandler {
	return &BotHandler{
		botService: botService,
		validator:  validator.New(),
		timeout:    10 * time.Second,
	}
}

type CreateBotRequest struct {
	CategoryID  uint64   `json:"category_id" validate:"required"`
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gte=0"`
	Features    []string `json:"features"`
	Complexity  int      `json:"complexity" validate:"omitempty,min=1,max=3"`
}

type UpdateBotRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Features    []string `json:"features,omitempty"`
	Complexity  int      `json:"complexity,omitempty" validate:"omitempty,min=1,max=3"`
}

func (h *BotHandler) CreateBot(c echo.Context) error {
	developerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateBotRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate bot request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bot := &domain.Bot{
		DeveloperID: developerID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
		Complexity:  req.Complexity,
	}

	newBot, err := h.botService.CreateBot(ctx, bot)
	if err != nil {
		logger.Error("Failed to create bot", err)
		if err.Error() == "category not found" ||
			err.Error() == "title must be at least 3 characters" ||
			err.Error() == "price cannot be negative" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Bot successfully created",
		"bot":     newBot,
	})
}

func (h *BotHandler) GetBotByID(c echo.Context) error {
	botID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid bot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bot, err := h.botService.GetBotByID(ctx, botID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find bot by id",
		"bot":     bot,
	})
}

func (h *BotHandler) GetApprovedBots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bots, err := h.botService.GetApprovedBots(ctx)
	if err != nil {
		logger.Error("Failed to find approved bots", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all bots",
		"bots":    bots,
	})
}

func (h *BotHandler) GetAllBots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bots, err := h.botService.GetAllBots(ctx)
	if err != nil {
		logger.Error("Failed to find all bots", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all bots",
		"bots":    bots,
	})
}

func (h *BotHandler) UpdateBot(c echo.Context) error {
	developerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	botID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid bot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req UpdateBotRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate bot request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updateData := &domain.Bot{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
		Complexity:  req.Complexity,
	}

	updatedBot, err := h.botService.UpdateBot(ctx, botID, developerID, updateData)
	if err != nil {
		logger.Error("Failed to update bot", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "bot does not belong to this developer" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update bot",
		"bot":     updatedBot,
	})
}

func (h *BotHandler) ApproveBot(c echo.Context) error {
	return h.moderate(c, h.botService.ApproveBot, "Bot approved")
}

func (h *BotHandler) RejectBot(c echo.Context) error {
	return h.moderate(c, h.botService.RejectBot, "Bot rejected")
}

func (h *BotHandler) moderate(c echo.Context, action func(context.Context, uint64) error, message string) error {
	botID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid bot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := action(ctx, botID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		"bot_id":  botID,
	})
}

func (h *BotHandler) DeleteBot(c echo.Context) error {
	developerID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	role, _ := c.Get("role").(string)

	botID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid bot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.botService.DeleteBot(ctx, botID, developerID, role == "admin")
	if err != nil {
		logger.Error("Failed to delete bot", err)
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "bot does not belong to this developer" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "bot successfully deleted",
		"bot_id":  botID,
	})
}
