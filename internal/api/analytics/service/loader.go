package analyticsService

import (
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

func (s *analyticsService) loadExpenses(ctx context.Context, userID string, window entity.DateRange) ([]entity.Expense, error) {
	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.logClientError(ctx, err)
		return nil, err
	}
	return repo.Expense.GetExpensesByUserID(ctx, userID, window)
}

func (s *analyticsService) loadIncomes(ctx context.Context, userID string, window entity.DateRange) ([]entity.Income, error) {
	repo, err := s.incomeRepository.NewClient(false)
	if err != nil {
		s.logClientError(ctx, err)
		return nil, err
	}
	return repo.Income.GetIncomesByUserID(ctx, userID, window)
}

func (s *analyticsService) loadBudgets(ctx context.Context, userID string) ([]entity.Budget, error) {
	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.logClientError(ctx, err)
		return nil, err
	}
	return repo.Budget.GetBudgetsByUserID(ctx, userID, nil)
}

func (s *analyticsService) loadCategories(ctx context.Context, userID string) ([]entity.Category, error) {
	repo, err := s.categoryRepository.NewClient(false)
	if err != nil {
		s.logClientError(ctx, err)
		return nil, err
	}
	return repo.Category.GetCategoriesByUserID(ctx, userID)
}

func (s *analyticsService) logClientError(ctx context.Context, err error) {
	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"error":      err.Error(),
	}).Error("Failed to create new client")
}
