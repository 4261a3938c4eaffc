package expenseRepository

import (
	"SmartBudget/internal/api/expense"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ExpenseDB struct {
	ID              sql.NullString  `db:"id"`
	UserID          sql.NullString  `db:"user_id"`
	CategoryID      sql.NullString  `db:"category_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     sql.NullString  `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	ReceiptKey      sql.NullString  `db:"receipt_key"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       sql.NullTime    `db:"updated_at"`
}

func (r *expenseRepository) CreateExpense(c context.Context, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":               e.ID,
		"user_id":          e.UserID,
		"category_id":      e.CategoryID,
		"amount":           e.Amount,
		"description":      e.Description,
		"transaction_date": e.Date.UTC(),
		"receipt_key":      nullString(e.ReceiptKey),
		"created_at":       e.CreatedAt.UTC(),
	}

	query, args, err := sqlx.Named(queryCreateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateExpense")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating expense")
		return err
	}

	return nil
}

func (r *expenseRepository) GetExpenseByID(c context.Context, id string) (entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var row ExpenseDB

	query, args, err := sqlx.Named(queryGetExpenseByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID named query preparation err")
		return entity.Expense{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"expense_id": id,
			}).Debug("GetExpenseByID no rows found")
			return entity.Expense{}, expense.ErrExpenseNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpenseByID execution err")
		return entity.Expense{}, err
	}

	return r.makeExpense(row), nil
}

func (r *expenseRepository) GetExpensesByUserID(c context.Context, userID string, window entity.DateRange) ([]entity.Expense, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []ExpenseDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	var sb strings.Builder
	sb.WriteString(queryGetExpensesByUserID)
	if window.From != nil {
		sb.WriteString(queryFilterDateFrom)
		argsKV["date_from"] = window.From.UTC()
	}
	if window.To != nil {
		sb.WriteString(queryFilterDateTo)
		argsKV["date_to"] = window.To.UTC()
	}
	sb.WriteString(queryOrderByDate)

	query, args, err := sqlx.Named(sb.String(), argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpensesByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetExpensesByUserID execution err")
		return nil, err
	}

	result := make([]entity.Expense, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeExpense(row))
	}

	return result, nil
}

func (r *expenseRepository) UpdateExpense(c context.Context, e entity.Expense) error {
	requestID := contextPkg.GetRequestID(c)

	var updatedAt interface{}
	if e.UpdatedAt != nil {
		updatedAt = e.UpdatedAt.UTC()
	}

	argsKV := map[string]interface{}{
		"id":               e.ID,
		"category_id":      e.CategoryID,
		"amount":           e.Amount,
		"description":      e.Description,
		"transaction_date": e.Date.UTC(),
		"receipt_key":      nullString(e.ReceiptKey),
		"updated_at":       updatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateExpense, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateExpense")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating expense")
		return err
	}

	return nil
}

func (r *expenseRepository) DeleteExpense(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteExpense, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteExpense")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting expense")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

// GetCategoryOwner returns the owner of a category, or ErrInvalidCategory when it does not exist.
func (r *expenseRepository) GetCategoryOwner(c context.Context, categoryID string) (string, error) {
	requestID := contextPkg.GetRequestID(c)
	var owner string

	query, args, err := sqlx.Named(queryGetCategoryOwner, map[string]interface{}{"id": categoryID})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryOwner named query preparation err")
		return "", err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", expense.ErrInvalidCategory
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryOwner execution err")
		return "", err
	}

	return owner, nil
}

func (r *expenseRepository) makeExpense(row ExpenseDB) entity.Expense {
	e := entity.Expense{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		CategoryID:  row.CategoryID.String,
		Amount:      row.Amount,
		Description: row.Description.String,
		Date:        row.TransactionDate.UTC(),
		CreatedAt:   row.CreatedAt.UTC(),
	}

	if row.ReceiptKey.Valid {
		key := row.ReceiptKey.String
		e.ReceiptKey = &key
	}

	if row.UpdatedAt.Valid {
		updatedAt := row.UpdatedAt.Time.UTC()
		e.UpdatedAt = &updatedAt
	}

	return e
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
