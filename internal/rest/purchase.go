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

type PurchaseService interface {
	PurchaseBot(ctx context.Context, userID uint, botID uint64) (domain.Transaction, error)
	GetPurchaseByID(ctx context.Context, userID, id uint, isAdmin bool) (domain.Transaction, error)
	GetPurchasesByUser(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

type PurchaseHandler struct {
	purchaseService PurchaseService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewPurchaseHandler(purchaseService PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type PurchaseRequest struct {
	BotID uint64 `json:"bot_id" validate:"required"`
}

func (h *PurchaseHandler) PurchaseBot(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate purchase request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tx, err := h.purchaseService.PurchaseBot(ctx, userID, req.BotID)
	if err != nil {
		logger.Error("Failed to purchase bot", err)
		if err.Error() == "bot not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "bot is not available for purchase" ||
			err.Error() == "bot already purchased" ||
			err.Error() == "developers cannot buy their own bot" ||
			err.Error() == "insufficient wallet balance" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Bot successfully purchased",
		"transaction": tx,
	})
}

func (h *PurchaseHandler) GetPurchaseByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	role, _ := c.Get("role").(string)

	txID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid transaction id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	tx, err := h.purchaseService.GetPurchaseByID(ctx, userID, uint(txID), role == "admin")
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "transaction does not belong to this user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "successfully find transaction by id",
		"transaction": tx,
	})
}

func (h *PurchaseHandler) GetMyPurchases(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	txs, err := h.purchaseService.GetPurchasesByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get purchases by user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "successfully get purchases by user",
		"transactions": txs,
	})
}
