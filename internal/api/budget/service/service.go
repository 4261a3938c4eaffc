package budgetService

import (
	"SmartBudget/internal/api/budget"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/utils"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type IBudgetService interface {
	CreateBudget(ctx context.Context, req budget.CreateBudgetRequest) (entity.Budget, error)
	GetBudgetByID(ctx context.Context, id string, userID string) (entity.Budget, error)
	GetBudgetsByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Budget, error)
	UpdateBudget(ctx context.Context, req budget.UpdateBudgetRequest) (entity.Budget, error)
	DeleteBudget(ctx context.Context, id string, userID string) error
	RemainingBudget(ctx context.Context, id string, userID string) (decimal.Decimal, error)
	IsBudgetExceeded(ctx context.Context, id string, userID string) (bool, error)
}

type budgetService struct {
	log              *logrus.Logger
	budgetRepository budgetRepository.Repository
	utils            utils.IUtils
	now              func() time.Time
}

type Option func(*budgetService)

// WithClock overrides the time source used for the current-year check.
func WithClock(now func() time.Time) Option {
	return func(s *budgetService) {
		s.now = now
	}
}

func New(log *logrus.Logger, br budgetRepository.Repository, utils utils.IUtils, opts ...Option) IBudgetService {
	s := &budgetService{
		log:              log,
		budgetRepository: br,
		utils:            utils,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
