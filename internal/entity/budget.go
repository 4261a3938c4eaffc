package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
}

func (b Budget) OwnerID() string {
	return b.UserID
}

// Period is the half-open window of the budget's calendar month.
func (b Budget) Period() DateRange {
	return MonthRange(b.Year, time.Month(b.Month))
}
