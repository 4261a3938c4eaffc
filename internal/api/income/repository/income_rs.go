package incomeRepository

import (
	"SmartBudget/internal/api/income"
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

type IncomeDB struct {
	ID              sql.NullString  `db:"id"`
	UserID          sql.NullString  `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     sql.NullString  `db:"description"`
	Source          sql.NullString  `db:"source"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       sql.NullTime    `db:"updated_at"`
}

func (r *incomeRepository) CreateIncome(c context.Context, i entity.Income) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":               i.ID,
		"user_id":          i.UserID,
		"amount":           i.Amount,
		"description":      i.Description,
		"source":           i.Source,
		"transaction_date": i.Date.UTC(),
		"created_at":       i.CreatedAt.UTC(),
	}

	query, args, err := sqlx.Named(queryCreateIncome, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateIncome")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating income")
		return err
	}

	return nil
}

func (r *incomeRepository) GetIncomeByID(c context.Context, id string) (entity.Income, error) {
	requestID := contextPkg.GetRequestID(c)
	var row IncomeDB

	query, args, err := sqlx.Named(queryGetIncomeByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetIncomeByID named query preparation err")
		return entity.Income{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Income{}, income.ErrIncomeNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetIncomeByID execution err")
		return entity.Income{}, err
	}

	return r.makeIncome(row), nil
}

func (r *incomeRepository) GetIncomesByUserID(c context.Context, userID string, window entity.DateRange) ([]entity.Income, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []IncomeDB

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	var sb strings.Builder
	sb.WriteString(queryGetIncomesByUserID)
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
		}).Error("GetIncomesByUserID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetIncomesByUserID execution err")
		return nil, err
	}

	result := make([]entity.Income, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeIncome(row))
	}

	return result, nil
}

func (r *incomeRepository) UpdateIncome(c context.Context, i entity.Income) error {
	requestID := contextPkg.GetRequestID(c)

	var updatedAt interface{}
	if i.UpdatedAt != nil {
		updatedAt = i.UpdatedAt.UTC()
	}

	argsKV := map[string]interface{}{
		"id":               i.ID,
		"amount":           i.Amount,
		"description":      i.Description,
		"source":           i.Source,
		"transaction_date": i.Date.UTC(),
		"updated_at":       updatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateIncome, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateIncome")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating income")
		return err
	}

	return nil
}

func (r *incomeRepository) DeleteIncome(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(queryDeleteIncome, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteIncome")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting income")
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return income.ErrIncomeNotFound
	}

	return nil
}

func (r *incomeRepository) makeIncome(row IncomeDB) entity.Income {
	i := entity.Income{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		Amount:      row.Amount,
		Description: row.Description.String,
		Source:      row.Source.String,
		Date:        row.TransactionDate.UTC(),
		CreatedAt:   row.CreatedAt.UTC(),
	}

	if row.UpdatedAt.Valid {
		updatedAt := row.UpdatedAt.Time.UTC()
		i.UpdatedAt = &updatedAt
	}

	return i
}
