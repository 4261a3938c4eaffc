package analyticsService

import (
	"SmartBudget/internal/api/analytics"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	categoryRepository "SmartBudget/internal/api/category/repository"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	incomeRepository "SmartBudget/internal/api/income/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/internal/testutil"
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2026, time.March, 20, 9, 30, 0, 0, time.UTC)

type AnalyticsServiceSuite struct {
	suite.Suite
	db      *sqlx.DB
	service IAnalyticsService
	ctx     context.Context
	owner   entity.User
	other   entity.User
	food    string
	rent    string
}

func TestAnalyticsServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	logger := testutil.NewLogger()
	s.service = New(logger,
		expenseRepository.New(s.db, logger),
		incomeRepository.New(s.db, logger),
		budgetRepository.New(s.db, logger),
		categoryRepository.New(s.db, logger),
		WithClock(func() time.Time { return fixedNow }),
	)
	s.ctx = context.Background()
	s.owner = testutil.CreateUser(s.T(), s.db)
	s.other = testutil.CreateUser(s.T(), s.db)
	s.food = s.insertCategory(s.owner.ID, "Food")
	s.rent = s.insertCategory(s.owner.ID, "Rent")

	s.insertExpense(s.owner.ID, s.food, "12.50", testutil.Date(2026, 1, 10))
	s.insertExpense(s.owner.ID, s.food, "7.50", testutil.Date(2026, 3, 1))
	s.insertExpense(s.owner.ID, s.rent, "800", testutil.Date(2026, 3, 2))
	s.insertIncome(s.owner.ID, "Salary", "2000", testutil.Date(2026, 3, 1))
	s.insertIncome(s.owner.ID, "Gift", "50", testutil.Date(2026, 1, 5))

	foreign := s.insertCategory(s.other.ID, "Food")
	s.insertExpense(s.other.ID, foreign, "10000", testutil.Date(2026, 3, 1))
	s.insertIncome(s.other.ID, "Salary", "10000", testutil.Date(2026, 3, 1))
}

func (s *AnalyticsServiceSuite) insertCategory(userID, name string) string {
	id := testutil.NewID()
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO categories (id, user_id, name, color_hex, created_at) VALUES (?, ?, ?, ?, ?)`),
		id, userID, name, entity.DefaultCategoryColor, time.Now().UTC())
	s.Require().NoError(err)
	return id
}

func (s *AnalyticsServiceSuite) insertExpense(userID, categoryID, amount string, date time.Time) {
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO expenses (id, user_id, category_id, amount, description, transaction_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		testutil.NewID(), userID, categoryID, decimal.RequireFromString(amount), "", date, time.Now().UTC())
	s.Require().NoError(err)
}

func (s *AnalyticsServiceSuite) insertIncome(userID, source, amount string, date time.Time) {
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO incomes (id, user_id, amount, description, source, transaction_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		testutil.NewID(), userID, decimal.RequireFromString(amount), "", source, date, time.Now().UTC())
	s.Require().NoError(err)
}

func (s *AnalyticsServiceSuite) insertBudget(categoryID, limit string, month, year int) string {
	id := testutil.NewID()
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO budgets (id, user_id, category_id, limit_amount, month, year, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id, s.owner.ID, categoryID, decimal.RequireFromString(limit), month, year, time.Now().UTC())
	s.Require().NoError(err)
	return id
}

func (s *AnalyticsServiceSuite) TestTotalsAreOwnerScoped() {
	expenses, err := s.service.TotalExpenses(s.ctx, s.owner.ID, nil, nil)
	s.Require().NoError(err)
	s.Equal("820.00", expenses.StringFixed(2))

	income, err := s.service.TotalIncome(s.ctx, s.owner.ID, nil, nil)
	s.Require().NoError(err)
	s.Equal("2050.00", income.StringFixed(2))

	net, err := s.service.NetBalance(s.ctx, s.owner.ID, nil, nil)
	s.Require().NoError(err)
	s.Equal("1230.00", net.StringFixed(2))

	nobody, err := s.service.TotalExpenses(s.ctx, testutil.NewID(), nil, nil)
	s.Require().NoError(err)
	s.True(nobody.IsZero())
}

func (s *AnalyticsServiceSuite) TestWindowIsInclusive() {
	start := testutil.Date(2026, 3, 1)
	end := testutil.Date(2026, 3, 1)

	expenses, err := s.service.TotalExpenses(s.ctx, s.owner.ID, &start, &end)
	s.Require().NoError(err)
	s.Equal("7.50", expenses.StringFixed(2))

	_, err = s.service.NetBalance(s.ctx, s.owner.ID, &end, &start)
	s.NoError(err)

	later := testutil.Date(2026, 3, 2)
	_, err = s.service.TotalIncome(s.ctx, s.owner.ID, &later, &start)
	s.ErrorIs(err, analytics.ErrInvalidDateRange)
}

func (s *AnalyticsServiceSuite) TestExpensesByCategory() {
	byCategory, err := s.service.ExpensesByCategory(s.ctx, s.owner.ID, nil, nil)
	s.Require().NoError(err)
	s.Len(byCategory, 2)
	s.Equal("20.00", byCategory["Food"].StringFixed(2))
	s.Equal("800.00", byCategory["Rent"].StringFixed(2))

	start := testutil.Date(2026, 2, 1)
	march, err := s.service.ExpensesByCategory(s.ctx, s.owner.ID, &start, nil)
	s.Require().NoError(err)
	s.Equal("7.50", march["Food"].StringFixed(2))
}

func (s *AnalyticsServiceSuite) TestMonthlyTrends() {
	trends, err := s.service.MonthlyTrends(s.ctx, s.owner.ID, 3)
	s.Require().NoError(err)
	s.Require().Len(trends, 3)

	s.Equal("2026-01", trends[0].Month)
	s.Equal("50.00", trends[0].Income.StringFixed(2))
	s.Equal("12.50", trends[0].Expenses.StringFixed(2))
	s.True(trends[1].Balance.IsZero())
	s.Equal("2026-03", trends[2].Month)
	s.Equal("1192.50", trends[2].Balance.StringFixed(2))

	_, err = s.service.MonthlyTrends(s.ctx, s.owner.ID, 0)
	s.ErrorIs(err, analytics.ErrInvalidMonths)
	_, err = s.service.MonthlyTrends(s.ctx, s.owner.ID, 121)
	s.ErrorIs(err, analytics.ErrInvalidMonths)
}

func (s *AnalyticsServiceSuite) TestBudgetVsActualAndReport() {
	within := s.insertBudget(s.food, "10", 3, 2026)
	exceeded := s.insertBudget(s.rent, "500", 3, 2026)

	vs, err := s.service.BudgetVsActual(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Len(vs, 2)
	s.Equal("2.50", vs["Budget_"+within].StringFixed(2))
	s.True(vs["Budget_"+exceeded].Equal(decimal.NewFromInt(-1)))

	report, err := s.service.BudgetReport(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().Len(report, 2)

	byID := map[string]analytics.BudgetReportItem{}
	for _, item := range report {
		byID[item.BudgetID] = item
	}
	s.Equal(analytics.StatusWithin, byID[within].Status)
	s.Equal("Food", byID[within].CategoryName)
	s.Equal(analytics.StatusExceeded, byID[exceeded].Status)
	s.Equal("300.00", byID[exceeded].Overage.StringFixed(2))

	none, err := s.service.BudgetVsActual(s.ctx, s.other.ID)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *AnalyticsServiceSuite) TestSummary() {
	summary, err := s.service.Summary(s.ctx, s.owner.ID, nil, nil)
	s.Require().NoError(err)

	s.Equal("2050.00", summary.TotalIncome.StringFixed(2))
	s.Equal("820.00", summary.TotalExpenses.StringFixed(2))
	s.Equal("1230.00", summary.NetBalance.StringFixed(2))
	s.Equal("800.00", summary.ByCategory["Rent"].StringFixed(2))
}

func (s *AnalyticsServiceSuite) TestExportTransactions() {
	data, err := s.service.ExportTransactions(s.ctx, s.owner.ID, &entity.MonthPeriod{Month: 3, Year: 2026})
	s.Require().NoError(err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	s.Require().NoError(err)
	defer f.Close()

	s.Equal([]string{"Expenses", "Income", "Summary"}, f.GetSheetList())

	expenseRows, err := f.GetRows("Expenses")
	s.Require().NoError(err)
	s.Require().Len(expenseRows, 3)
	s.Equal([]string{"Date", "Category", "Description", "Amount"}, expenseRows[0])

	incomeRows, err := f.GetRows("Income")
	s.Require().NoError(err)
	s.Require().Len(incomeRows, 2)
	s.Equal("Salary", incomeRows[1][1])

	total, err := f.GetCellValue("Summary", "B2")
	s.Require().NoError(err)
	s.Equal("2000", total)

	_, err = s.service.ExportTransactions(s.ctx, s.owner.ID, &entity.MonthPeriod{Month: 13, Year: 2026})
	s.ErrorIs(err, analytics.ErrInvalidPeriod)
}
