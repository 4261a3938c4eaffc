package expenseService

import (
	"SmartBudget/internal/api/expense"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/s3"
	"SmartBudget/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type IExpenseService interface {
	CreateExpense(ctx context.Context, req expense.CreateExpenseRequest, receipt *multipart.FileHeader) (entity.Expense, error)
	GetExpenseByID(ctx context.Context, id string, userID string) (entity.Expense, error)
	GetExpensesByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Expense, error)
	UpdateExpense(ctx context.Context, req expense.UpdateExpenseRequest, receipt *multipart.FileHeader) (entity.Expense, error)
	DeleteExpense(ctx context.Context, id string, userID string) error
	TotalExpensesByUser(ctx context.Context, userID string, month int, year int) (decimal.Decimal, error)
}

type expenseService struct {
	log               *logrus.Logger
	expenseRepository expenseRepository.Repository
	s3                s3.ItfS3
	utils             utils.IUtils
}

// New builds the expense service. receipts may be nil when object storage is not configured.
func New(log *logrus.Logger, er expenseRepository.Repository, receipts s3.ItfS3, utils utils.IUtils) IExpenseService {
	return &expenseService{
		log:               log,
		expenseRepository: er,
		s3:                receipts,
		utils:             utils,
	}
}
