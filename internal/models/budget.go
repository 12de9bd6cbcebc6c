package models

// Budget represents a spending ceiling for one category in one month.
// The composite unique index makes the one-budget-per-(month, category)
// invariant a storage guarantee rather than a best-effort check.
type Budget struct {
	Base
	Month    string  `gorm:"type:varchar(7);not null;uniqueIndex:idx_budgets_month_category" json:"month"`
	Category string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_budgets_month_category" json:"category"`
	Amount   float64 `gorm:"not null" json:"amount"`
}
