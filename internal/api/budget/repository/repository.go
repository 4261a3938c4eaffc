package budgetRepository

import (
	"SmartBudget/internal/entity"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Budget:   &budgetRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Budget interface {
		CreateBudget(ctx context.Context, budget entity.Budget) error
		GetBudgetByID(ctx context.Context, id string) (entity.Budget, error)
		GetBudgetsByUserID(ctx context.Context, userID string, period *entity.MonthPeriod) ([]entity.Budget, error)
		UpdateBudget(ctx context.Context, budget entity.Budget) error
		DeleteBudget(ctx context.Context, id string) error
		GetCategoryOwner(ctx context.Context, categoryID string) (string, error)
		GetSpentAmounts(ctx context.Context, userID string, categoryID string, window entity.DateRange) ([]decimal.Decimal, error)
	}

	Commit   func() error
	Rollback func() error
}

type budgetRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
