package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/coder11a/personal-finance-visualizer/internal/errors"
	"github.com/coder11a/personal-finance-visualizer/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Month    string  `json:"month" binding:"required,iso_month"`
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

// ListBudgets handles listing budgets, optionally for one month.
// @Summary     List budgets
// @Description Get budgets sorted by month descending, category ascending
// @Tags        budgets
// @Produce     json
// @Param       month query string false "Restrict to one month (YYYY-MM)"
// @Success     200 {array} models.Budget "Budgets"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	budgets, err := h.budgetService.ListBudgets(c.Query("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// CreateBudget handles creating a budget for a (month, category) pair.
// @Summary     Create a budget
// @Description Create the spending ceiling for one category in one month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Budget already exists for this month and category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(req.Month, req.Category, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, budget)
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete a budget
// @Description Delete a budget by ID
// @Tags        budgets
// @Produce     json
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetBudgetComparison handles the budget-vs-actual report for one month.
// @Summary     Budget comparison
// @Description Budgeted vs actual spend per budgeted category for one month
// @Tags        budgets
// @Produce     json
// @Param       month query string true "Month (YYYY-MM)"
// @Success     200 {array} services.BudgetComparison "Comparison rows"
// @Failure     400 {object} ErrorResponse "Missing month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/comparison [get]
func (h *BudgetHandler) GetBudgetComparison(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		respondWithError(c, apperrors.ErrMissingMonth)
		return
	}

	comparison, err := h.budgetService.CompareBudgets(month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}
