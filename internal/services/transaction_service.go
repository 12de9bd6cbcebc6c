package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/coder11a/personal-finance-visualizer/internal/errors"
	"github.com/coder11a/personal-finance-visualizer/internal/models"
	"github.com/coder11a/personal-finance-visualizer/internal/palette"
)

// transactionService handles transaction CRUD and the transaction-level reports.
type transactionService struct {
	db *gorm.DB

	// now is swappable in tests so the trailing 12-month window is deterministic.
	now func() time.Time
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db, now: time.Now}
}

// CreateTransaction records a new income or expense event.
func (s *transactionService) CreateTransaction(amount float64, description, date string, txType models.TransactionType, category string) (*models.Transaction, error) {
	tx := &models.Transaction{
		Amount:      amount,
		Description: description,
		Date:        date,
		Type:        txType,
		Category:    category,
	}

	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// ListTransactions returns transactions newest-first. A positive limit caps
// the result for the dashboard's recent-transactions view; zero means all.
func (s *transactionService) ListTransactions(limit int) ([]models.Transaction, error) {
	query := s.db.Order("date DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// UpdateTransaction replaces every user-editable field of a transaction.
// Partial updates are not supported.
func (s *transactionService) UpdateTransaction(id string, amount float64, description, date string, txType models.TransactionType, category string) error {
	var tx models.Transaction
	if err := s.db.Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTransactionNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"amount":      amount,
		"description": description,
		"date":        date,
		"type":        txType,
		"category":    category,
	}
	if err := s.db.Model(&tx).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (s *transactionService) DeleteTransaction(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// categoryRow is the scan target for the category grouping query.
type categoryRow struct {
	Category string
	Amount   float64
	Count    int
}

// CategoryBreakdown groups transactions of the given type by category and
// computes each category's share of the total. Rows are sorted by descending
// amount; colors are assigned by row position in the sorted result.
func (s *transactionService) CategoryBreakdown(txType models.TransactionType) ([]CategoryShare, error) {
	var rows []categoryRow
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(NULLIF(category, ''), 'Uncategorized') AS category, SUM(amount) AS amount, COUNT(*) AS count").
		Where("type = ?", txType).
		Group("COALESCE(NULLIF(category, ''), 'Uncategorized')").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var total float64
	for _, row := range rows {
		total += row.Amount
	}

	result := make([]CategoryShare, 0, len(rows))
	for i, row := range rows {
		percentage := 0
		if total > 0 {
			percentage = roundPercent(row.Amount / total * 100)
		}
		result = append(result, CategoryShare{
			Category:   row.Category,
			Amount:     row.Amount,
			Percentage: percentage,
			Count:      row.Count,
			Color:      palette.Color(i),
		})
	}
	return result, nil
}

// monthlyRow is the scan target for the monthly grouping query.
type monthlyRow struct {
	MonthKey string
	Income   float64
	Expenses float64
}

// MonthlySummary sums income and expenses per calendar month over the 12 full
// months ending with the current one. Months without transactions are omitted,
// so the series is not necessarily contiguous.
func (s *transactionService) MonthlySummary() ([]MonthlyTotals, error) {
	now := s.now()
	windowStart := time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)

	var rows []monthlyRow
	err := s.db.Model(&models.Transaction{}).
		Select("SUBSTR(date, 1, 7) AS month_key, " +
			"SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END) AS income, " +
			"SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END) AS expenses").
		Where("date >= ? AND date < ?", windowStart.Format("2006-01-02"), windowEnd.Format("2006-01-02")).
		Group("SUBSTR(date, 1, 7)").
		Order("month_key ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := make([]MonthlyTotals, 0, len(rows))
	for _, row := range rows {
		label := row.MonthKey
		if parsed, err := time.Parse("2006-01", row.MonthKey); err == nil {
			label = parsed.Format("Jan 2006")
		}
		result = append(result, MonthlyTotals{
			Month:    label,
			Income:   row.Income,
			Expenses: row.Expenses,
		})
	}
	return result, nil
}
