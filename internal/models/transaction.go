package models

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// UncategorizedLabel is the category reported for transactions that were
// recorded without one. The coercion happens at aggregation time only; the
// stored row keeps its empty category.
const UncategorizedLabel = "Uncategorized"

// Transaction represents a single recorded income or expense event.
// Date is stored as an ISO YYYY-MM-DD string; month filters compare these
// strings lexically, which zero-padded ISO dates make equivalent to a
// calendar comparison within a month.
type Transaction struct {
	Base
	Amount      float64         `gorm:"not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Date        string          `gorm:"type:varchar(10);not null;index" json:"date"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Category    string          `gorm:"type:varchar(100)" json:"category,omitempty"`
}

// DisplayCategory returns the category label used in aggregations.
func (t *Transaction) DisplayCategory() string {
	if t.Category == "" {
		return UncategorizedLabel
	}
	return t.Category
}
