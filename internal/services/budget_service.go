package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/coder11a/personal-finance-visualizer/internal/errors"
	"github.com/coder11a/personal-finance-visualizer/internal/models"
	"github.com/coder11a/personal-finance-visualizer/internal/palette"
)

// budgetService handles budget CRUD and the budget-vs-actual report.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates the budget for a (month, category) pair. The existence
// check gives a friendly conflict for the common case; the unique index on
// (month, category) closes the race between concurrent creates.
func (s *budgetService) CreateBudget(month, category string, amount float64) (*models.Budget, error) {
	var existing models.Budget
	err := s.db.Where("month = ? AND category = ?", month, category).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateBudget
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget := &models.Budget{
		Month:    month,
		Category: category,
		Amount:   amount,
	}
	if err := s.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// ListBudgets returns budgets sorted by month descending, category ascending,
// optionally restricted to one month.
func (s *budgetService) ListBudgets(month string) ([]models.Budget, error) {
	query := s.db.Order("month DESC, category ASC")
	if month != "" {
		query = query.Where("month = ?", month)
	}

	var budgets []models.Budget
	if err := query.Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// DeleteBudget removes a budget by ID.
func (s *budgetService) DeleteBudget(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Budget{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// actualRow is the scan target for the per-category spend query.
type actualRow struct {
	Category string
	Amount   float64
}

// CompareBudgets joins a month's budgets with that month's actual category
// spend. Output has one row per budget; spend in unbudgeted categories is
// excluded. The expense filter is a lexical range over ISO date strings, with
// "-31" as the upper bound for every month; the YYYY-MM prefix keeps it from
// leaking into adjacent months.
func (s *budgetService) CompareBudgets(month string) ([]BudgetComparison, error) {
	var budgets []models.Budget
	if err := s.db.Where("month = ?", month).Order("created_at ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(budgets) == 0 {
		return []BudgetComparison{}, nil
	}

	var actuals []actualRow
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(NULLIF(category, ''), 'Uncategorized') AS category, SUM(amount) AS amount").
		Where("type = ? AND date >= ? AND date <= ?", models.TransactionTypeExpense, month+"-01", month+"-31").
		Group("COALESCE(NULLIF(category, ''), 'Uncategorized')").
		Scan(&actuals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	actualByCategory := make(map[string]float64, len(actuals))
	for _, row := range actuals {
		actualByCategory[row.Category] = row.Amount
	}

	result := make([]BudgetComparison, 0, len(budgets))
	for i, budget := range budgets {
		actual := actualByCategory[budget.Category]
		percentage := 0
		if budget.Amount > 0 {
			percentage = roundPercent(actual / budget.Amount * 100)
		}
		result = append(result, BudgetComparison{
			Category:   budget.Category,
			Budget:     budget.Amount,
			Actual:     actual,
			Remaining:  budget.Amount - actual,
			Percentage: percentage,
			Color:      palette.Color(i),
		})
	}
	return result, nil
}
