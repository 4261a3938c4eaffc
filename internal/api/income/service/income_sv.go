package incomeService

import (
	"SmartBudget/internal/api/income"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"SmartBudget/pkg/money"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *incomeService) CreateIncome(ctx context.Context, req income.CreateIncomeRequest) (entity.Income, error) {
	requestID := contextPkg.GetRequestID(ctx)

	date, err := parseIncomeDate(req.Date)
	if err != nil {
		return entity.Income{}, err
	}

	newIncome := entity.Income{
		UserID:      req.UserID,
		Amount:      money.Round(req.Amount),
		Description: req.Description,
		Source:      strings.TrimSpace(req.Source),
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}
	if err := validateIncome(newIncome); err != nil {
		return entity.Income{}, err
	}

	newIncome.ID, err = s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Income{}, err
	}

	repo, err := s.incomeRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Income{}, err
	}
	defer repo.Rollback()

	if err := repo.Income.CreateIncome(ctx, newIncome); err != nil {
		return entity.Income{}, income.ErrCreateIncome
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit income creation")
		return entity.Income{}, income.ErrCreateIncome
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"income_id":  newIncome.ID,
	}).Info("Income created")

	return newIncome, nil
}

func (s *incomeService) GetIncomeByID(ctx context.Context, id string, userID string) (entity.Income, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.incomeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Income{}, err
	}

	found, err := repo.Income.GetIncomeByID(ctx, id)
	if err != nil {
		return entity.Income{}, err
	}

	if err := entity.CheckOwner(found, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"income_id":  id,
			"user_id":    userID,
		}).Warn("Income read by non-owner")
		return entity.Income{}, income.ErrIncomeNotFound
	}

	return found, nil
}

func (s *incomeService) GetIncomesByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Income, error) {
	var window entity.DateRange
	if period != nil {
		if period.Month < 1 || period.Month > 12 || period.Year == 0 {
			return nil, income.ErrInvalidPeriod
		}
		window = period.Range()
	}

	return s.incomesInWindow(ctx, userID, window)
}

func (s *incomeService) UpdateIncome(ctx context.Context, req income.UpdateIncomeRequest) (entity.Income, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.incomeRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Income{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Income.GetIncomeByID(ctx, req.ID)
	if errors.Is(err, income.ErrIncomeNotFound) {
		return entity.Income{}, income.ErrIncomeNotOwned
	} else if err != nil {
		return entity.Income{}, err
	}

	if err := entity.CheckOwner(existing, req.UserID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"income_id":  req.ID,
			"user_id":    req.UserID,
		}).Warn("Income mutation by non-owner")
		return entity.Income{}, income.ErrIncomeNotOwned
	}

	updated := existing
	if req.Amount != nil {
		updated.Amount = money.Round(*req.Amount)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Source != nil {
		updated.Source = strings.TrimSpace(*req.Source)
	}
	if req.Date != nil {
		date, err := parseIncomeDate(*req.Date)
		if err != nil {
			return entity.Income{}, err
		}
		updated.Date = date
	}
	if err := validateIncome(updated); err != nil {
		return entity.Income{}, err
	}

	now := time.Now().UTC()
	updated.UpdatedAt = &now

	if err := repo.Income.UpdateIncome(ctx, updated); err != nil {
		return entity.Income{}, income.ErrUpdateIncome
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit income update")
		return entity.Income{}, income.ErrUpdateIncome
	}

	return updated, nil
}

func (s *incomeService) DeleteIncome(ctx context.Context, id string, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.incomeRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}
	defer repo.Rollback()

	existing, err := repo.Income.GetIncomeByID(ctx, id)
	if errors.Is(err, income.ErrIncomeNotFound) {
		return income.ErrIncomeNotOwned
	} else if err != nil {
		return err
	}

	if err := entity.CheckOwner(existing, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"income_id":  id,
			"user_id":    userID,
		}).Warn("Income deletion by non-owner")
		return income.ErrIncomeNotOwned
	}

	if err := repo.Income.DeleteIncome(ctx, id); err != nil {
		return income.ErrDeleteIncome
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit income deletion")
		return income.ErrDeleteIncome
	}

	return nil
}

// TotalIncome sums income dated within [startDate, endDate]; nil bounds are open.
func (s *incomeService) TotalIncome(ctx context.Context, userID string, startDate *time.Time, endDate *time.Time) (decimal.Decimal, error) {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return decimal.Zero, income.ErrInvalidDateRange
	}

	incomes, err := s.incomesInWindow(ctx, userID, entity.InclusiveRange(startDate, endDate))
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(i.Amount)
	}

	return money.Round(total), nil
}

func (s *incomeService) incomesInWindow(ctx context.Context, userID string, window entity.DateRange) ([]entity.Income, error) {
	repo, err := s.incomeRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Income.GetIncomesByUserID(ctx, userID, window)
}

func parseIncomeDate(raw string) (time.Time, error) {
	date, err := entity.ParseDate(raw)
	if err != nil {
		return time.Time{}, income.ErrInvalidDate
	}
	if date.After(entity.TruncateDay(time.Now())) {
		return time.Time{}, income.ErrFutureDate
	}
	return date, nil
}

func validateIncome(i entity.Income) error {
	if !money.IsPositive(i.Amount) {
		return income.ErrInvalidAmount
	}
	if i.Source == "" || len([]rune(i.Source)) > entity.MaxIncomeSourceLength {
		return income.ErrInvalidSource
	}
	if len([]rune(i.Description)) > entity.MaxDescriptionLength {
		return income.ErrDescriptionTooLong
	}
	return nil
}
