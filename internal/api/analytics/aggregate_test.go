package analytics

import (
	"SmartBudget/internal/entity"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(categoryID, amount string, date time.Time) entity.Expense {
	return entity.Expense{CategoryID: categoryID, Amount: decimal.RequireFromString(amount), Date: date}
}

func income(amount string, date time.Time) entity.Income {
	return entity.Income{Amount: decimal.RequireFromString(amount), Date: date}
}

func TestSumsOfEmptySetsAreZero(t *testing.T) {
	assert.True(t, SumExpenses(nil).IsZero())
	assert.True(t, SumIncomes(nil).IsZero())
}

func TestExpensesByCategory(t *testing.T) {
	categories := []entity.Category{
		{ID: "c1", Name: "Food"},
		{ID: "c2", Name: "Rent"},
	}
	expenses := []entity.Expense{
		expense("c1", "10.10", day(2026, 1, 1)),
		expense("c1", "5.20", day(2026, 1, 2)),
		expense("c2", "700", day(2026, 1, 3)),
		expense("gone", "3", day(2026, 1, 4)),
	}

	got := ExpensesByCategory(expenses, categories)

	require.Len(t, got, 3)
	assert.Equal(t, "15.30", got["Food"].StringFixed(2))
	assert.Equal(t, "700.00", got["Rent"].StringFixed(2))
	assert.Equal(t, "3.00", got[entity.UnknownCategoryName].StringFixed(2))
}

func TestExpensesByCategoryNameCollisionIsDeterministic(t *testing.T) {
	categories := []entity.Category{
		{ID: "a", Name: "Food"},
		{ID: "b", Name: "Food"},
	}
	expenses := []entity.Expense{
		expense("b", "2", day(2026, 1, 1)),
		expense("a", "1", day(2026, 1, 1)),
	}

	for i := 0; i < 20; i++ {
		got := ExpensesByCategory(expenses, categories)
		require.Len(t, got, 1)
		assert.Equal(t, "2.00", got["Food"].StringFixed(2))
	}
}

func TestMonthlyTrends(t *testing.T) {
	now := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	expenses := []entity.Expense{
		expense("c", "100", day(2026, 3, 1)),
		expense("c", "50", day(2026, 1, 31)),
		expense("c", "999", day(2025, 12, 31)),
	}
	incomes := []entity.Income{
		income("1000", day(2026, 3, 10)),
		income("20", day(2026, 2, 1)),
	}

	trends := MonthlyTrends(expenses, incomes, now, 3)

	require.Len(t, trends, 3)
	assert.Equal(t, "2026-01", trends[0].Month)
	assert.Equal(t, "2026-02", trends[1].Month)
	assert.Equal(t, "2026-03", trends[2].Month)

	assert.Equal(t, "50.00", trends[0].Expenses.StringFixed(2))
	assert.Equal(t, "-50.00", trends[0].Balance.StringFixed(2))
	assert.True(t, trends[1].Expenses.IsZero())
	assert.Equal(t, "20.00", trends[1].Balance.StringFixed(2))
	assert.Equal(t, "900.00", trends[2].Balance.StringFixed(2))
}

func TestMonthlyTrendsCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	trends := MonthlyTrends(nil, nil, now, 14)

	require.Len(t, trends, 14)
	assert.Equal(t, "2025-01", trends[0].Month)
	assert.Equal(t, "2025-12", trends[11].Month)
	assert.Equal(t, "2026-02", trends[13].Month)
	for _, tr := range trends {
		assert.True(t, tr.Balance.IsZero())
	}
}

func TestTrendWindow(t *testing.T) {
	window := TrendWindow(time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC), 12)

	assert.Equal(t, day(2025, 4, 1), *window.From)
	assert.Equal(t, day(2026, 4, 1), *window.To)
}

func TestBudgetVsActual(t *testing.T) {
	budgets := []entity.Budget{
		{ID: "under", CategoryID: "food", LimitAmount: decimal.NewFromInt(100), Month: 3, Year: 2026},
		{ID: "exact", CategoryID: "rent", LimitAmount: decimal.NewFromInt(700), Month: 3, Year: 2026},
		{ID: "over", CategoryID: "fun", LimitAmount: decimal.NewFromInt(50), Month: 3, Year: 2026},
		{ID: "empty", CategoryID: "food", LimitAmount: decimal.NewFromInt(80), Month: 4, Year: 2026},
	}
	expenses := []entity.Expense{
		expense("food", "30", day(2026, 3, 2)),
		expense("food", "500", day(2026, 2, 28)),
		expense("rent", "700", day(2026, 3, 1)),
		expense("fun", "50.01", day(2026, 3, 20)),
	}

	got := BudgetVsActual(budgets, expenses)

	require.Len(t, got, 4)
	assert.Equal(t, "70.00", got["Budget_under"].StringFixed(2))
	assert.True(t, got["Budget_exact"].IsZero())
	assert.True(t, got["Budget_over"].Equal(decimal.NewFromInt(-1)))
	assert.Equal(t, "80.00", got["Budget_empty"].StringFixed(2))
}

func TestBudgetReport(t *testing.T) {
	budgets := []entity.Budget{
		{ID: "b1", CategoryID: "food", LimitAmount: decimal.NewFromInt(100), Month: 3, Year: 2026},
		{ID: "b2", CategoryID: "fun", LimitAmount: decimal.NewFromInt(50), Month: 3, Year: 2026},
	}
	categories := []entity.Category{{ID: "food", Name: "Food"}}
	expenses := []entity.Expense{
		expense("food", "40", day(2026, 3, 2)),
		expense("fun", "75.50", day(2026, 3, 3)),
	}

	report := BudgetReport(budgets, expenses, categories)

	require.Len(t, report, 2)
	assert.Equal(t, StatusWithin, report[0].Status)
	assert.Equal(t, "Food", report[0].CategoryName)
	assert.Equal(t, "60.00", report[0].Remaining.StringFixed(2))
	assert.True(t, report[0].Overage.IsZero())

	assert.Equal(t, StatusExceeded, report[1].Status)
	assert.Equal(t, entity.UnknownCategoryName, report[1].CategoryName)
	assert.Equal(t, "25.50", report[1].Overage.StringFixed(2))
	assert.True(t, report[1].Remaining.IsZero())

	responses := NewBudgetReportResponses(report)
	require.NotNil(t, responses[0].Remaining)
	assert.Nil(t, responses[0].Overage)
	require.NotNil(t, responses[1].Overage)
	assert.Equal(t, "25.50", *responses[1].Overage)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(
		[]entity.Expense{expense("c1", "40", day(2026, 1, 1)), expense("c1", "2.5", day(2026, 1, 2))},
		[]entity.Income{income("100", day(2026, 1, 3))},
		[]entity.Category{{ID: "c1", Name: "Food"}},
	)

	assert.Equal(t, "100.00", summary.TotalIncome.StringFixed(2))
	assert.Equal(t, "42.50", summary.TotalExpenses.StringFixed(2))
	assert.Equal(t, "57.50", summary.NetBalance.StringFixed(2))
	assert.Equal(t, "42.50", summary.ByCategory["Food"].StringFixed(2))
}
