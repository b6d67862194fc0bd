package handlers

import (
	"errors"

	"fintrack/internal/dto"
	"fintrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService *service.TransactionService
	logger    *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService: txService,
		logger:    logger,
	}
}

// List godoc
// @Summary List transactions
// @Description Filtered, sorted, paginated listing of the caller's transactions with embedded categories
// @Tags transactions
// @Produce json
// @Param filter query string false "all, income or expense" default(all)
// @Param sort query string false "date or amount" default(date)
// @Param order query string false "asc or desc" default(desc)
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "page size" default(10)
// @Param startDate query string false "inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "inclusive upper date bound (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.TransactionListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	params := dto.ListTransactionsParams{
		Filter:    c.Query("filter"),
		Sort:      c.Query("sort"),
		Order:     c.Query("order"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	resp, err := h.txService.List(c.Context(), userID, params)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Error(),
			})
		}
		h.logger.Error("Failed to list transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list transactions",
		})
	}

	return c.JSON(resp)
}

// Create godoc
// @Summary Create a transaction
// @Description Record an income or expense against one of the caller's categories
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction request"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.txService.Create(c.Context(), userID, &req)
	if err != nil {
		var vErr *dto.ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Error(),
			})
		case errors.Is(err, service.ErrInvalidCategory):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid category or category not found",
			})
		}
		h.logger.Error("Failed to create transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Delete godoc
// @Summary Delete a transaction
// @Description Delete a transaction owned by the caller
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} map[string]string
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	if err := h.txService.Delete(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Transaction not found",
			})
		}
		h.logger.Error("Failed to delete transaction", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete transaction",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Transaction deleted"})
}

// Stats godoc
// @Summary Transaction statistics
// @Description Income/expense totals, counts and balance over an optional inclusive date range
// @Tags transactions
// @Produce json
// @Param startDate query string false "inclusive lower date bound (YYYY-MM-DD)"
// @Param endDate query string false "inclusive upper date bound (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.TransactionStatsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /transactions/stats [get]
func (h *TransactionHandler) Stats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	params := dto.StatsParams{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	resp, err := h.txService.Stats(c.Context(), userID, params)
	if err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": vErr.Error(),
			})
		}
		h.logger.Error("Failed to compute transaction stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute transaction stats",
		})
	}

	return c.JSON(resp)
}
