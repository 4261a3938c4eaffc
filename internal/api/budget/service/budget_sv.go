package budgetService

import (
	"SmartBudget/internal/api/budget"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"SmartBudget/pkg/money"
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *budgetService) CreateBudget(ctx context.Context, req budget.CreateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now().UTC()

	newBudget := entity.Budget{
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		LimitAmount: money.Round(req.LimitAmount),
		Month:       req.Month,
		Year:        req.Year,
		CreatedAt:   now,
	}
	if err := validateBudget(newBudget); err != nil {
		return entity.Budget{}, err
	}
	if newBudget.Year < now.Year() {
		return entity.Budget{}, budget.ErrPastYear
	}

	var err error
	newBudget.ID, err = s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Budget{}, err
	}

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}
	defer repo.Rollback()

	if err := s.checkCategory(ctx, repo, req.CategoryID, req.UserID); err != nil {
		return entity.Budget{}, err
	}

	if err := repo.Budget.CreateBudget(ctx, newBudget); err != nil {
		return entity.Budget{}, budget.ErrCreateBudget
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget creation")
		return entity.Budget{}, budget.ErrCreateBudget
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"budget_id":  newBudget.ID,
	}).Info("Budget created")

	return newBudget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, id string, userID string) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}

	found, err := repo.Budget.GetBudgetByID(ctx, id)
	if err != nil {
		return entity.Budget{}, err
	}

	if err := entity.CheckOwner(found, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"budget_id":  id,
			"user_id":    userID,
		}).Warn("Budget requested by non-owner")
		return entity.Budget{}, budget.ErrBudgetNotFound
	}

	return found, nil
}

func (s *budgetService) GetBudgetsByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Budget, error) {
	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Budget.GetBudgetsByUserID(ctx, userID, period)
}

func (s *budgetService) UpdateBudget(ctx context.Context, req budget.UpdateBudgetRequest) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Budget{}, err
	}
	defer repo.Rollback()

	existing, err := s.ownedBudget(ctx, repo, req.ID, req.UserID)
	if err != nil {
		return entity.Budget{}, err
	}

	updated := existing
	if req.LimitAmount != nil {
		updated.LimitAmount = money.Round(*req.LimitAmount)
	}
	if req.Month != nil {
		updated.Month = *req.Month
	}
	if req.Year != nil {
		// A stored past year may be kept, but not newly chosen.
		if *req.Year != existing.Year && *req.Year < s.now().UTC().Year() {
			return entity.Budget{}, budget.ErrPastYear
		}
		updated.Year = *req.Year
	}
	if req.CategoryID != nil && *req.CategoryID != existing.CategoryID {
		if err := s.checkCategory(ctx, repo, *req.CategoryID, req.UserID); err != nil {
			return entity.Budget{}, err
		}
		updated.CategoryID = *req.CategoryID
	}
	if err := validateBudget(updated); err != nil {
		return entity.Budget{}, err
	}

	now := s.now().UTC()
	updated.UpdatedAt = &now

	if err := repo.Budget.UpdateBudget(ctx, updated); err != nil {
		return entity.Budget{}, budget.ErrUpdateBudget
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget update")
		return entity.Budget{}, budget.ErrUpdateBudget
	}

	return updated, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, id string, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.budgetRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}
	defer repo.Rollback()

	if _, err := s.ownedBudget(ctx, repo, id, userID); err != nil {
		return err
	}

	if err := repo.Budget.DeleteBudget(ctx, id); err != nil {
		return budget.ErrDeleteBudget
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit budget deletion")
		return budget.ErrDeleteBudget
	}

	return nil
}

// RemainingBudget is the limit minus the spending in the budget's category and month. It goes
// negative once the budget is exceeded.
func (s *budgetService) RemainingBudget(ctx context.Context, id string, userID string) (decimal.Decimal, error) {
	repo, err := s.budgetRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return decimal.Zero, err
	}

	found, err := s.ownedBudget(ctx, repo, id, userID)
	if err != nil {
		return decimal.Zero, err
	}

	amounts, err := repo.Budget.GetSpentAmounts(ctx, userID, found.CategoryID, found.Period())
	if err != nil {
		return decimal.Zero, err
	}

	return money.Round(found.LimitAmount.Sub(money.Sum(amounts...))), nil
}

func (s *budgetService) IsBudgetExceeded(ctx context.Context, id string, userID string) (bool, error) {
	remaining, err := s.RemainingBudget(ctx, id, userID)
	if err != nil {
		return false, err
	}
	return remaining.IsNegative(), nil
}

// ownedBudget loads a budget for mutation; absent and foreign budgets both read as not owned.
func (s *budgetService) ownedBudget(ctx context.Context, repo budgetRepository.Client, id string, userID string) (entity.Budget, error) {
	found, err := repo.Budget.GetBudgetByID(ctx, id)
	if errors.Is(err, budget.ErrBudgetNotFound) {
		return entity.Budget{}, budget.ErrBudgetNotOwned
	} else if err != nil {
		return entity.Budget{}, err
	}

	if err := entity.CheckOwner(found, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"budget_id":  id,
			"user_id":    userID,
		}).Warn("Budget access by non-owner")
		return entity.Budget{}, budget.ErrBudgetNotOwned
	}

	return found, nil
}

func (s *budgetService) checkCategory(ctx context.Context, repo budgetRepository.Client, categoryID string, userID string) error {
	owner, err := repo.Budget.GetCategoryOwner(ctx, categoryID)
	if err != nil {
		return err
	}

	if owner != userID {
		s.log.WithFields(logrus.Fields{
			"request_id":  contextPkg.GetRequestID(ctx),
			"category_id": categoryID,
			"user_id":     userID,
		}).Warn("Budget references a foreign category")
		return budget.ErrInvalidCategory
	}

	return nil
}

func validateBudget(b entity.Budget) error {
	if !money.IsPositive(b.LimitAmount) {
		return budget.ErrInvalidLimit
	}
	if b.Month < 1 || b.Month > 12 {
		return budget.ErrInvalidMonth
	}
	return nil
}
