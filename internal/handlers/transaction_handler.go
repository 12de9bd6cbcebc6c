package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/coder11a/personal-finance-visualizer/internal/errors"
	"github.com/coder11a/personal-finance-visualizer/internal/models"
	"github.com/coder11a/personal-finance-visualizer/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest is the payload for creating or replacing a transaction.
// Updates are whole-record replaces, so the same shape serves both.
type TransactionRequest struct {
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"required"`
	Date        string                 `json:"date" binding:"required,iso_date"`
	Type        models.TransactionType `json:"type" binding:"required,txn_type"`
	Category    string                 `json:"category"`
}

// ListTransactions handles listing all transactions, newest first.
// @Summary     List transactions
// @Description Get all transactions sorted by date descending
// @Tags        transactions
// @Produce     json
// @Param       limit query int false "Cap the number of rows returned"
// @Success     200 {array} models.Transaction "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid limit"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	transactions, err := h.transactionService.ListTransactions(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction handles recording a new transaction.
// @Summary     Create a transaction
// @Description Record a new income or expense event
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tx, err := h.transactionService.CreateTransaction(req.Amount, req.Description, req.Date, req.Type, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// UpdateTransaction handles replacing an existing transaction's fields.
// @Summary     Update a transaction
// @Description Replace every field of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Replacement transaction details"
// @Success     200 {object} map[string]bool "success"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	err := h.transactionService.UpdateTransaction(c.Param("id"), req.Amount, req.Description, req.Date, req.Type, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTransaction handles deleting a transaction.
// @Summary     Delete a transaction
// @Description Delete a transaction by ID
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]bool "success"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.DeleteTransaction(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCategoryBreakdown handles the per-category share report.
// @Summary     Category breakdown
// @Description Per-category totals and share of total for one transaction type
// @Tags        transactions
// @Produce     json
// @Param       type query string false "Transaction type (income or expense, default expense)"
// @Success     200 {array} services.CategoryShare "Category breakdown"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/categories [get]
func (h *TransactionHandler) GetCategoryBreakdown(c *gin.Context) {
	txType := models.TransactionTypeExpense
	if v := c.Query("type"); v != "" {
		t := models.TransactionType(v)
		if t != models.TransactionTypeIncome && t != models.TransactionTypeExpense {
			respondWithError(c, apperrors.ErrInvalidTransactionType)
			return
		}
		txType = t
	}

	breakdown, err := h.transactionService.CategoryBreakdown(txType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// GetMonthlySummary handles the trailing 12-month trend report.
// @Summary     Monthly summary
// @Description Income and expense totals per month over the trailing 12 months
// @Tags        transactions
// @Produce     json
// @Success     200 {array} services.MonthlyTotals "Monthly totals"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/monthly [get]
func (h *TransactionHandler) GetMonthlySummary(c *gin.Context) {
	summary, err := h.transactionService.MonthlySummary()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
