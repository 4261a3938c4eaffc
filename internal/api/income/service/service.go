package incomeService

import (
	"SmartBudget/internal/api/income"
	incomeRepository "SmartBudget/internal/api/income/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/utils"
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type IIncomeService interface {
	CreateIncome(ctx context.Context, req income.CreateIncomeRequest) (entity.Income, error)
	GetIncomeByID(ctx context.Context, id string, userID string) (entity.Income, error)
	GetIncomesByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Income, error)
	UpdateIncome(ctx context.Context, req income.UpdateIncomeRequest) (entity.Income, error)
	DeleteIncome(ctx context.Context, id string, userID string) error
	TotalIncome(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error)
}

type incomeService struct {
	log              *logrus.Logger
	incomeRepository incomeRepository.Repository
	utils            utils.IUtils
}

func New(log *logrus.Logger, ir incomeRepository.Repository, utils utils.IUtils) IIncomeService {
	return &incomeService{
		log:              log,
		incomeRepository: ir,
		utils:            utils,
	}
}
