package services

import (
	"github.com/coder11a/personal-finance-visualizer/internal/models"
)

// CategoryShare is one row of the category breakdown report: a category's
// summed amount and its share of the report total.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
	Count      int     `json:"count"`
	Color      string  `json:"color"`
}

// MonthlyTotals is one row of the trailing 12-month trend report.
type MonthlyTotals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// BudgetComparison is one row of the budget-vs-actual report. Rows exist only
// for categories that have a budget in the month; unbudgeted spend is out of
// scope for this view.
type BudgetComparison struct {
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Actual     float64 `json:"actual"`
	Remaining  float64 `json:"remaining"`
	Percentage int     `json:"percentage"`
	Color      string  `json:"color"`
}

// InsightType tags an insight card for the dashboard.
type InsightType string

const (
	InsightTypeHighest  InsightType = "highest"
	InsightTypeTrend    InsightType = "trend"
	InsightTypeCategory InsightType = "category"
)

// Insight is one human-readable summary card derived from a month's expenses.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Value       string      `json:"value"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error)
	ListTransactions(limit int) ([]models.Transaction, error)
	UpdateTransaction(id string, amount float64, description, date string, txType models.TransactionType, category string) error
	DeleteTransaction(id string) error
	CategoryBreakdown(txType models.TransactionType) ([]CategoryShare, error)
	MonthlySummary() ([]MonthlyTotals, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(month, category string, amount float64) (*models.Budget, error)
	ListBudgets(month string) ([]models.Budget, error)
	DeleteBudget(id string) error
	CompareBudgets(month string) ([]BudgetComparison, error)
}

// InsightServicer defines the contract for the insight report.
type InsightServicer interface {
	GenerateInsights(month string) ([]Insight, error)
}
