package analyticsService

import (
	"SmartBudget/internal/api/analytics"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func (s *analyticsService) ExpensesByCategory(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (map[string]decimal.Decimal, error) {
	window, err := dateWindow(startDate, endDate)
	if err != nil {
		return nil, err
	}

	var (
		expenses   []entity.Expense
		categories []entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.loadExpenses(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.loadCategories(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analytics.ExpensesByCategory(expenses, categories), nil
}

func (s *analyticsService) TotalExpenses(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error) {
	window, err := dateWindow(startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}

	expenses, err := s.loadExpenses(ctx, userID, window)
	if err != nil {
		return decimal.Zero, err
	}

	return analytics.SumExpenses(expenses), nil
}

func (s *analyticsService) TotalIncome(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error) {
	window, err := dateWindow(startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}

	incomes, err := s.loadIncomes(ctx, userID, window)
	if err != nil {
		return decimal.Zero, err
	}

	return analytics.SumIncomes(incomes), nil
}

func (s *analyticsService) NetBalance(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error) {
	window, err := dateWindow(startDate, endDate)
	if err != nil {
		return decimal.Zero, err
	}

	expenses, incomes, err := s.loadTransactions(ctx, userID, window)
	if err != nil {
		return decimal.Zero, err
	}

	return analytics.SumIncomes(incomes).Sub(analytics.SumExpenses(expenses)), nil
}

func (s *analyticsService) MonthlyTrends(ctx context.Context, userID string, months int) ([]analytics.MonthlyTrend, error) {
	if months < 1 || months > analytics.MaxTrendMonths {
		return nil, analytics.ErrInvalidMonths
	}

	now := s.now()
	expenses, incomes, err := s.loadTransactions(ctx, userID, analytics.TrendWindow(now, months))
	if err != nil {
		return nil, err
	}

	return analytics.MonthlyTrends(expenses, incomes, now, months), nil
}

func (s *analyticsService) BudgetVsActual(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	budgets, expenses, _, err := s.loadBudgetSnapshot(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	return analytics.BudgetVsActual(budgets, expenses), nil
}

func (s *analyticsService) BudgetReport(ctx context.Context, userID string) ([]analytics.BudgetReportItem, error) {
	budgets, expenses, categories, err := s.loadBudgetSnapshot(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	return analytics.BudgetReport(budgets, expenses, categories), nil
}

func (s *analyticsService) Summary(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (analytics.Summary, error) {
	window, err := dateWindow(startDate, endDate)
	if err != nil {
		return analytics.Summary{}, err
	}

	var (
		expenses   []entity.Expense
		incomes    []entity.Income
		categories []entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.loadExpenses(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.loadIncomes(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.loadCategories(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to load summary snapshot")
		return analytics.Summary{}, err
	}

	return analytics.Summarize(expenses, incomes, categories), nil
}

func (s *analyticsService) loadTransactions(ctx context.Context, userID string, window entity.DateRange) ([]entity.Expense, []entity.Income, error) {
	var (
		expenses []entity.Expense
		incomes  []entity.Income
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.loadExpenses(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.loadIncomes(gctx, userID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return expenses, incomes, nil
}

// loadBudgetSnapshot loads the user's budgets together with all of the user's expenses.
func (s *analyticsService) loadBudgetSnapshot(ctx context.Context, userID string, withCategories bool) ([]entity.Budget, []entity.Expense, []entity.Category, error) {
	var (
		budgets    []entity.Budget
		expenses   []entity.Expense
		categories []entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.loadBudgets(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.loadExpenses(gctx, userID, entity.DateRange{})
		return err
	})
	if withCategories {
		g.Go(func() error {
			var err error
			categories, err = s.loadCategories(gctx, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return budgets, expenses, categories, nil
}

func dateWindow(startDate *time.Time, endDate *time.Time) (entity.DateRange, error) {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return entity.DateRange{}, analytics.ErrInvalidDateRange
	}
	return entity.InclusiveRange(startDate, endDate), nil
}
