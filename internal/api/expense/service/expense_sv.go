package expenseService

import (
	"SmartBudget/internal/api/expense"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"SmartBudget/pkg/money"
	"SmartBudget/pkg/s3"
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *expenseService) CreateExpense(ctx context.Context, req expense.CreateExpenseRequest, receipt *multipart.FileHeader) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	date, err := parseExpenseDate(req.Date)
	if err != nil {
		return entity.Expense{}, err
	}
	if err := validateExpenseFields(req.Amount, req.Description); err != nil {
		return entity.Expense{}, err
	}
	if receipt != nil {
		if err := s.checkReceipt(receipt); err != nil {
			return entity.Expense{}, err
		}
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return entity.Expense{}, err
	}

	newExpense := entity.Expense{
		ID:          ULID,
		UserID:      req.UserID,
		CategoryID:  req.CategoryID,
		Amount:      money.Round(req.Amount),
		Description: req.Description,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}
	defer repo.Rollback()

	if err := s.checkCategory(ctx, repo, req.CategoryID, req.UserID); err != nil {
		return entity.Expense{}, err
	}

	if receipt != nil {
		key := s3.ReceiptKey(req.UserID, newExpense.ID, receipt.Filename)
		if err := s.s3.UploadReceipt(ctx, key, receipt); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload receipt")
			return entity.Expense{}, expense.ErrFailedToUploadReceipt
		}
		newExpense.ReceiptKey = &key
	}

	if err := repo.Expense.CreateExpense(ctx, newExpense); err != nil {
		s.discardReceipt(ctx, newExpense.ReceiptKey)
		return entity.Expense{}, expense.ErrCreateExpense
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense creation")
		s.discardReceipt(ctx, newExpense.ReceiptKey)
		return entity.Expense{}, expense.ErrCreateExpense
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": newExpense.ID,
	}).Info("Expense created")

	return newExpense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, id string, userID string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}

	found, err := repo.Expense.GetExpenseByID(ctx, id)
	if err != nil {
		return entity.Expense{}, err
	}

	if err := entity.CheckOwner(found, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"user_id":    userID,
		}).Warn("Expense read by non-owner")
		return entity.Expense{}, expense.ErrExpenseNotFound
	}

	if found.ReceiptKey != nil && s.s3 != nil {
		link, err := s.s3.PresignURL(*found.ReceiptKey)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to presign receipt link")
		} else {
			found.ReceiptLink = link
		}
	}

	return found, nil
}

func (s *expenseService) GetExpensesByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var window entity.DateRange
	if period != nil {
		if period.Month < 1 || period.Month > 12 || period.Year == 0 {
			return nil, expense.ErrInvalidPeriod
		}
		window = period.Range()
	}

	repo, err := s.expenseRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Expense.GetExpensesByUserID(ctx, userID, window)
}

func (s *expenseService) UpdateExpense(ctx context.Context, req expense.UpdateExpenseRequest, receipt *multipart.FileHeader) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if receipt != nil {
		if err := s.checkReceipt(receipt); err != nil {
			return entity.Expense{}, err
		}
	}

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return entity.Expense{}, err
	}
	defer repo.Rollback()

	existing, err := repo.Expense.GetExpenseByID(ctx, req.ID)
	if errors.Is(err, expense.ErrExpenseNotFound) {
		return entity.Expense{}, expense.ErrExpenseNotOwned
	} else if err != nil {
		return entity.Expense{}, err
	}

	if err := entity.CheckOwner(existing, req.UserID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": req.ID,
			"user_id":    req.UserID,
		}).Warn("Expense mutation by non-owner")
		return entity.Expense{}, expense.ErrExpenseNotOwned
	}

	updated := existing
	if req.Amount != nil {
		updated.Amount = money.Round(*req.Amount)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			return entity.Expense{}, err
		}
		updated.Date = date
	}
	if err := validateExpenseFields(updated.Amount, updated.Description); err != nil {
		return entity.Expense{}, err
	}
	if req.CategoryID != nil && *req.CategoryID != existing.CategoryID {
		if err := s.checkCategory(ctx, repo, *req.CategoryID, req.UserID); err != nil {
			return entity.Expense{}, err
		}
		updated.CategoryID = *req.CategoryID
	}

	var staleKey *string
	if receipt != nil {
		key := s3.ReceiptKey(req.UserID, existing.ID, receipt.Filename)
		if err := s.s3.UploadReceipt(ctx, key, receipt); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload receipt")
			return entity.Expense{}, expense.ErrFailedToUploadReceipt
		}
		if existing.ReceiptKey != nil && *existing.ReceiptKey != key {
			staleKey = existing.ReceiptKey
		}
		updated.ReceiptKey = &key
	}

	now := time.Now().UTC()
	updated.UpdatedAt = &now

	if err := repo.Expense.UpdateExpense(ctx, updated); err != nil {
		return entity.Expense{}, expense.ErrUpdateExpense
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense update")
		return entity.Expense{}, expense.ErrUpdateExpense
	}

	s.discardReceipt(ctx, staleKey)

	return updated, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id string, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.expenseRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return err
	}
	defer repo.Rollback()

	existing, err := repo.Expense.GetExpenseByID(ctx, id)
	if errors.Is(err, expense.ErrExpenseNotFound) {
		return expense.ErrExpenseNotOwned
	} else if err != nil {
		return err
	}

	if err := entity.CheckOwner(existing, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"expense_id": id,
			"user_id":    userID,
		}).Warn("Expense deletion by non-owner")
		return expense.ErrExpenseNotOwned
	}

	if err := repo.Expense.DeleteExpense(ctx, id); err != nil {
		return expense.ErrDeleteExpense
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit expense deletion")
		return expense.ErrDeleteExpense
	}

	s.discardReceipt(ctx, existing.ReceiptKey)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expense_id": id,
	}).Info("Expense deleted")

	return nil
}

func (s *expenseService) TotalExpensesByUser(ctx context.Context, userID string, month int, year int) (decimal.Decimal, error) {
	expenses, err := s.GetExpensesByUserID(ctx, userID, &entity.MonthPeriod{Month: month, Year: year})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return money.Round(total), nil
}

// checkCategory rejects categories that are missing or owned by someone else.
func (s *expenseService) checkCategory(ctx context.Context, repo expenseRepository.Client, categoryID string, userID string) error {
	owner, err := repo.Expense.GetCategoryOwner(ctx, categoryID)
	if err != nil {
		return err
	}

	if owner != userID {
		s.log.WithFields(logrus.Fields{
			"request_id":  contextPkg.GetRequestID(ctx),
			"category_id": categoryID,
			"user_id":     userID,
		}).Warn("Expense references a foreign category")
		return expense.ErrInvalidCategory
	}

	return nil
}

func (s *expenseService) checkReceipt(receipt *multipart.FileHeader) error {
	if s.s3 == nil {
		return expense.ErrReceiptStorageUnavailable
	}
	if err := s.utils.ValidateReceiptFile(receipt); err != nil {
		return expense.ErrInvalidReceipt
	}
	return nil
}

// discardReceipt removes an object that no longer backs any expense. Failures are only logged.
func (s *expenseService) discardReceipt(ctx context.Context, key *string) {
	if key == nil || s.s3 == nil {
		return
	}

	if err := s.s3.DeleteObject(ctx, *key); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  contextPkg.GetRequestID(ctx),
			"receipt_key": *key,
			"error":       err.Error(),
		}).Error("Failed to delete receipt object")
	}
}

func parseExpenseDate(raw string) (time.Time, error) {
	date, err := entity.ParseDate(raw)
	if err != nil {
		return time.Time{}, expense.ErrInvalidDate
	}
	if date.After(entity.TruncateDay(time.Now())) {
		return time.Time{}, expense.ErrFutureDate
	}
	return date, nil
}

func validateExpenseFields(amount decimal.Decimal, description string) error {
	if !money.IsPositive(amount) {
		return expense.ErrInvalidAmount
	}
	if len([]rune(description)) > entity.MaxDescriptionLength {
		return expense.ErrDescriptionTooLong
	}
	return nil
}
