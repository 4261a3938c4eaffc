package analytics

import (
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/money"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultTrendMonths = 12
	MaxTrendMonths     = 120

	// ExceededSentinel marks an exceeded budget in BudgetVsActual.
	ExceededSentinel = -1

	StatusWithin   = "within"
	StatusExceeded = "exceeded"
)

type MonthlyTrend struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

type BudgetReportItem struct {
	BudgetID     string
	CategoryID   string
	CategoryName string
	Month        int
	Year         int
	Limit        decimal.Decimal
	Spent        decimal.Decimal
	Status       string
	Remaining    decimal.Decimal
	Overage      decimal.Decimal
}

type Summary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetBalance    decimal.Decimal
	ByCategory    map[string]decimal.Decimal
}

func SumExpenses(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return money.Round(total)
}

func SumIncomes(incomes []entity.Income) decimal.Decimal {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Amount)
	}
	return money.Round(total)
}

// ExpensesByCategory sums expenses per category and keys the result by category name.
// Unresolvable categories fall under UnknownCategoryName. Groups are visited in category id
// order, so when two categories share a name the one with the greater id wins.
func ExpensesByCategory(expenses []entity.Expense, categories []entity.Category) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		sums[e.CategoryID] = sums[e.CategoryID].Add(e.Amount)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	ids := make([]string, 0, len(sums))
	for id := range sums {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make(map[string]decimal.Decimal, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = entity.UnknownCategoryName
		}
		result[name] = money.Round(sums[id])
	}

	return result
}

// TrendWindow is the half-open range covering the given number of months ending with now's month.
func TrendWindow(now time.Time, months int) entity.DateRange {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return entity.DateRange{From: &from, To: &to}
}

// MonthlyTrends buckets records into exactly months entries, oldest first, ending with now's month.
func MonthlyTrends(expenses []entity.Expense, incomes []entity.Income, now time.Time, months int) []MonthlyTrend {
	now = now.UTC()
	trends := make([]MonthlyTrend, 0, months)
	index := make(map[string]int, months)

	for i := months - 1; i >= 0; i-- {
		key := entity.MonthKey(time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC))
		index[key] = len(trends)
		trends = append(trends, MonthlyTrend{
			Month:    key,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Balance:  decimal.Zero,
		})
	}

	for _, e := range expenses {
		if idx, ok := index[entity.MonthKey(e.Date)]; ok {
			trends[idx].Expenses = trends[idx].Expenses.Add(e.Amount)
		}
	}
	for _, in := range incomes {
		if idx, ok := index[entity.MonthKey(in.Date)]; ok {
			trends[idx].Income = trends[idx].Income.Add(in.Amount)
		}
	}

	for i := range trends {
		trends[i].Income = money.Round(trends[i].Income)
		trends[i].Expenses = money.Round(trends[i].Expenses)
		trends[i].Balance = trends[i].Income.Sub(trends[i].Expenses)
	}

	return trends
}

// SpentPerBudget sums, for each budget, the expenses in its category and calendar month.
func SpentPerBudget(budgets []entity.Budget, expenses []entity.Expense) map[string]decimal.Decimal {
	type bucket struct {
		categoryID string
		month      string
	}

	totals := make(map[bucket]decimal.Decimal)
	for _, e := range expenses {
		k := bucket{categoryID: e.CategoryID, month: entity.MonthKey(e.Date)}
		totals[k] = totals[k].Add(e.Amount)
	}

	spent := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		k := bucket{categoryID: b.CategoryID, month: fmt.Sprintf("%04d-%02d", b.Year, b.Month)}
		spent[b.ID] = money.Round(totals[k])
	}

	return spent
}

func BudgetKey(budgetID string) string {
	return "Budget_" + budgetID
}

// BudgetVsActual maps each budget to limit minus spent, or to ExceededSentinel once spending
// passes the limit. Spending exactly at the limit yields zero.
func BudgetVsActual(budgets []entity.Budget, expenses []entity.Expense) map[string]decimal.Decimal {
	spent := SpentPerBudget(budgets, expenses)

	result := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		actual := spent[b.ID]
		if actual.GreaterThan(b.LimitAmount) {
			result[BudgetKey(b.ID)] = decimal.NewFromInt(ExceededSentinel)
			continue
		}
		result[BudgetKey(b.ID)] = b.LimitAmount.Sub(actual)
	}

	return result
}

// BudgetReport is the tagged form of BudgetVsActual. Items keep the order of budgets.
func BudgetReport(budgets []entity.Budget, expenses []entity.Expense, categories []entity.Category) []BudgetReportItem {
	spent := SpentPerBudget(budgets, expenses)

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	report := make([]BudgetReportItem, 0, len(budgets))
	for _, b := range budgets {
		name, ok := names[b.CategoryID]
		if !ok {
			name = entity.UnknownCategoryName
		}

		item := BudgetReportItem{
			BudgetID:     b.ID,
			CategoryID:   b.CategoryID,
			CategoryName: name,
			Month:        b.Month,
			Year:         b.Year,
			Limit:        b.LimitAmount,
			Spent:        spent[b.ID],
			Remaining:    decimal.Zero,
			Overage:      decimal.Zero,
		}

		if item.Spent.GreaterThan(item.Limit) {
			item.Status = StatusExceeded
			item.Overage = item.Spent.Sub(item.Limit)
		} else {
			item.Status = StatusWithin
			item.Remaining = item.Limit.Sub(item.Spent)
		}

		report = append(report, item)
	}

	return report
}

// Summarize reduces one snapshot of records into totals and the category breakdown.
func Summarize(expenses []entity.Expense, incomes []entity.Income, categories []entity.Category) Summary {
	totalIncome := SumIncomes(incomes)
	totalExpenses := SumExpenses(expenses)

	return Summary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetBalance:    totalIncome.Sub(totalExpenses),
		ByCategory:    ExpensesByCategory(expenses, categories),
	}
}
