package budgetRepository

import (
	"SmartBudget/internal/api/budget"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type BudgetDB struct {
	ID          sql.NullString  `db:"id"`
	UserID      sql.NullString  `db:"user_id"`
	CategoryID  sql.NullString  `db:"category_id"`
	LimitAmount decimal.Decimal `db:"limit_amount"`
	Month       sql.NullInt64   `db:"month"`
	Year        sql.NullInt64   `db:"year"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   sql.NullTime    `db:"updated_at"`
}

func (r *budgetRepository) CreateBudget(c context.Context, b entity.Budget) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":           b.ID,
		"user_id":      b.UserID,
		"category_id":  b.CategoryID,
		"limit_amount": b.LimitAmount,
		"month":        b.Month,
		"year":         b.Year,
		"created_at":   b.CreatedAt.UTC(),
	}

	query, args, err := sqlx.Named(queryCreateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateBudget")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating budget")
		return err
	}

	return nil
}

func (r *budgetRepository) GetBudgetByID(c context.Context, id string) (entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var row BudgetDB

	query, args, err := sqlx.Named(queryGetBudgetByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID named query preparation err")
		return entity.Budget{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"budget_id":  id,
			}).Debug("GetBudgetByID no rows found")
			return entity.Budget{}, budget.ErrBudgetNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetByID execution err")
		return entity.Budget{}, err
	}

	return r.makeBudget(row), nil
}

// GetBudgetsByUserID lists the user's budgets, newest period first. A nil period lists all of them.
func (r *budgetRepository) GetBudgetsByUserID(c context.Context, userID string, period *entity.MonthPeriod) ([]entity.Budget, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []BudgetDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query := queryGetBudgetsByUserID
	if period != nil {
		query += queryFilterPeriod
		argsKV["month"] = period.Month
		argsKV["year"] = period.Year
	}
	query += queryOrderByPeriod

	query, args, err := sqlx.Named(query, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetsByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBudgetsByUserID execution err")
		return nil, err
	}

	result := make([]entity.Budget, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeBudget(row))
	}

	return result, nil
}

func (r *budgetRepository) UpdateBudget(c context.Context, b entity.Budget) error {
	requestID := contextPkg.GetRequestID(c)

	var updatedAt interface{}
	if b.UpdatedAt != nil {
		updatedAt = b.UpdatedAt.UTC()
	}

	argsKV := map[string]interface{}{
		"id":           b.ID,
		"category_id":  b.CategoryID,
		"limit_amount": b.LimitAmount,
		"month":        b.Month,
		"year":         b.Year,
		"updated_at":   updatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateBudget, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateBudget")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating budget")
		return err
	}

	return nil
}

func (r *budgetRepository) DeleteBudget(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteBudget, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteBudget")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting budget")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}

func (r *budgetRepository) GetCategoryOwner(c context.Context, categoryID string) (string, error) {
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
			return "", budget.ErrInvalidCategory
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetCategoryOwner execution err")
		return "", err
	}

	return owner, nil
}

// GetSpentAmounts returns the amounts of the user's expenses in one category within window.
// Both bounds of window must be set.
func (r *budgetRepository) GetSpentAmounts(c context.Context, userID string, categoryID string, window entity.DateRange) ([]decimal.Decimal, error) {
	requestID := contextPkg.GetRequestID(c)
	var amounts []decimal.Decimal

	argsKV := map[string]interface{}{
		"user_id":     userID,
		"category_id": categoryID,
		"date_from":   window.From.UTC(),
		"date_to":     window.To.UTC(),
	}

	query, args, err := sqlx.Named(queryGetSpentAmounts, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSpentAmounts named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &amounts, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSpentAmounts execution err")
		return nil, err
	}

	return amounts, nil
}

func (r *budgetRepository) makeBudget(row BudgetDB) entity.Budget {
	b := entity.Budget{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		CategoryID:  row.CategoryID.String,
		LimitAmount: row.LimitAmount,
		Month:       int(row.Month.Int64),
		Year:        int(row.Year.Int64),
		CreatedAt:   row.CreatedAt.UTC(),
	}

	if row.UpdatedAt.Valid {
		updatedAt := row.UpdatedAt.Time.UTC()
		b.UpdatedAt = &updatedAt
	}

	return b
}
