package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/coder11a/personal-finance-visualizer/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates a transaction with the given type, amount,
// category, and ISO date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, txType models.TransactionType, amount float64, category, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Amount:      amount,
		Description: fmt.Sprintf("Test transaction %d", nextID()),
		Date:        date,
		Type:        txType,
		Category:    category,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestExpense creates an expense transaction.
func CreateTestExpense(t *testing.T, db *gorm.DB, amount float64, category, date string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, models.TransactionTypeExpense, amount, category, date)
}

// CreateTestIncome creates an income transaction.
func CreateTestIncome(t *testing.T, db *gorm.DB, amount float64, category, date string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, models.TransactionTypeIncome, amount, category, date)
}

// CreateTestBudget creates a budget for the given month and category.
func CreateTestBudget(t *testing.T, db *gorm.DB, month, category string, amount float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Month:    month,
		Category: category,
		Amount:   amount,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
