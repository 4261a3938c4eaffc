package analyticsService

import (
	"SmartBudget/internal/api/analytics"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	categoryRepository "SmartBudget/internal/api/category/repository"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	incomeRepository "SmartBudget/internal/api/income/repository"
	"SmartBudget/internal/entity"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAnalyticsService holds the read-only reductions over a user's records. Date bounds are
// inclusive calendar days and either may be nil.
type IAnalyticsService interface {
	ExpensesByCategory(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (map[string]decimal.Decimal, error)
	TotalExpenses(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error)
	TotalIncome(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error)
	NetBalance(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error)
	MonthlyTrends(ctx context.Context, userID string, months int) ([]analytics.MonthlyTrend, error)
	BudgetVsActual(ctx context.Context, userID string) (map[string]decimal.Decimal, error)
	BudgetReport(ctx context.Context, userID string) ([]analytics.BudgetReportItem, error)
	Summary(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (analytics.Summary, error)
	ExportTransactions(ctx context.Context, userID string, period *entity.MonthPeriod) ([]byte, error)
}

type analyticsService struct {
	log                *logrus.Logger
	expenseRepository  expenseRepository.Repository
	incomeRepository   incomeRepository.Repository
	budgetRepository   budgetRepository.Repository
	categoryRepository categoryRepository.Repository
	now                func() time.Time
}

type Option func(*analyticsService)

// WithClock overrides the time source that anchors monthly trends.
func WithClock(now func() time.Time) Option {
	return func(s *analyticsService) {
		s.now = now
	}
}

func New(
	log *logrus.Logger,
	er expenseRepository.Repository,
	ir incomeRepository.Repository,
	br budgetRepository.Repository,
	cr categoryRepository.Repository,
	opts ...Option,
) IAnalyticsService {
	s := &analyticsService{
		log:                log,
		expenseRepository:  er,
		incomeRepository:   ir,
		budgetRepository:   br,
		categoryRepository: cr,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
