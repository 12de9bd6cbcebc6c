package services

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/coder11a/personal-finance-visualizer/internal/errors"
	"github.com/coder11a/personal-finance-visualizer/internal/models"
)

// avgDailyDivisor is the flat day count used for the average daily spending
// card, for filtered months and all-time queries alike.
const avgDailyDivisor = 30

// insightService derives the dashboard's summary cards from expense data.
type insightService struct {
	db *gorm.DB
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db}
}

// GenerateInsights builds the ordered insight cards for the given month, or
// for all recorded expenses when month is empty. An empty expense set yields
// an empty card list.
func (s *insightService) GenerateInsights(month string) ([]Insight, error) {
	expenses, err := s.fetchExpenses(month)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return []Insight{}, nil
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	insights := make([]Insight, 0, 5)

	if card, ok := highestCategoryCard(expenses); ok {
		insights = append(insights, card)
	}

	insights = append(insights, Insight{
		Type:        InsightTypeTrend,
		Title:       "Average Daily Spending",
		Description: "Your daily spending average",
		Value:       fmt.Sprintf("%.2f", total/avgDailyDivisor),
		Icon:        "📊",
		Color:       "#3B82F6",
	})

	insights = append(insights, Insight{
		Type:        InsightTypeCategory,
		Title:       "Total Transactions",
		Description: "Number of expense transactions",
		Value:       strconv.Itoa(len(expenses)),
		Icon:        "🛒",
		Color:       "#10B981",
	})

	insights = append(insights, largestTransactionCard(expenses))

	if month != "" {
		card, err := s.monthOverMonthCard(month, total)
		if err != nil {
			return nil, err
		}
		insights = append(insights, card)
	}

	return insights, nil
}

// fetchExpenses loads expense rows oldest-first so "first encountered"
// tie-breaks follow insertion order.
func (s *insightService) fetchExpenses(month string) ([]models.Transaction, error) {
	query := s.db.Where("type = ?", models.TransactionTypeExpense)
	if month != "" {
		query = query.Where("date >= ? AND date <= ?", month+"-01", month+"-31")
	}

	var expenses []models.Transaction
	if err := query.Order("created_at ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// highestCategoryCard finds the category with the largest summed spend.
// Ties keep the category whose first transaction came earliest.
func highestCategoryCard(expenses []models.Transaction) (Insight, bool) {
	totals := make(map[string]float64, len(expenses))
	var order []string
	for _, e := range expenses {
		category := e.DisplayCategory()
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] += e.Amount
	}

	var highestCategory string
	var highestAmount float64
	for _, category := range order {
		if totals[category] > highestAmount {
			highestAmount = totals[category]
			highestCategory = category
		}
	}
	if highestCategory == "" {
		return Insight{}, false
	}

	return Insight{
		Type:        InsightTypeHighest,
		Title:       "Highest Spending Category",
		Description: fmt.Sprintf("You spent the most on %s", highestCategory),
		Value:       fmt.Sprintf("%.2f", highestAmount),
		Icon:        "📈",
		Color:       "#EF4444",
	}, true
}

// largestTransactionCard reports the single biggest expense; ties keep the
// first-encountered row.
func largestTransactionCard(expenses []models.Transaction) Insight {
	largest := expenses[0]
	for _, e := range expenses[1:] {
		if e.Amount > largest.Amount {
			largest = e
		}
	}

	return Insight{
		Type:        InsightTypeHighest,
		Title:       "Most Expensive Transaction",
		Description: largest.Description,
		Value:       fmt.Sprintf("%.2f", largest.Amount),
		Icon:        "💸",
		Color:       "#F59E0B",
	}
}

// monthOverMonthCard compares this month's spend against the previous
// calendar month, using the same lenient date-string range.
func (s *insightService) monthOverMonthCard(month string, total float64) (Insight, error) {
	prevMonth, err := previousMonth(month)
	if err != nil {
		return Insight{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month format")
	}

	var prevTotal float64
	err = s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ? AND date >= ? AND date <= ?", models.TransactionTypeExpense, prevMonth+"-01", prevMonth+"-31").
		Scan(&prevTotal).Error
	if err != nil {
		return Insight{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	change := total - prevTotal
	var changePercent float64
	if prevTotal > 0 {
		changePercent = change / prevTotal * 100
	}

	value := fmt.Sprintf("%.1f%%", changePercent)
	description := "Spending decreased"
	icon := "📉"
	color := "#10B981"
	if change >= 0 {
		value = "+" + value
		description = "Spending increased"
		icon = "📈"
		color = "#EF4444"
	}

	return Insight{
		Type:        InsightTypeTrend,
		Title:       "Month-over-Month Change",
		Description: description,
		Value:       value,
		Icon:        icon,
		Color:       color,
	}, nil
}

// previousMonth steps a YYYY-MM string back one month, rolling the year back
// when the input month is January.
func previousMonth(month string) (string, error) {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed month %q", month)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", err
	}
	monthNum, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", err
	}

	if monthNum == 1 {
		return fmt.Sprintf("%d-12", year-1), nil
	}
	return fmt.Sprintf("%d-%02d", year, monthNum-1), nil
}
