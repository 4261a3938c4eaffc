package budget

import (
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/money"
	"time"

	"github.com/shopspring/decimal"
)

type CreateBudgetRequest struct {
	UserID      string          `json:"-" validate:"required"`
	CategoryID  string          `json:"category_id" validate:"required"`
	LimitAmount decimal.Decimal `json:"limit_amount" validate:"money"`
	Month       int             `json:"month" validate:"required,min=1,max=12"`
	Year        int             `json:"year" validate:"required,min=1900,max=9999"`
}

// UpdateBudgetRequest changes only the fields that are present.
type UpdateBudgetRequest struct {
	ID          string           `json:"-" validate:"required"`
	UserID      string           `json:"-" validate:"required"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,min=1"`
	LimitAmount *decimal.Decimal `json:"limit_amount" validate:"omitempty,money"`
	Month       *int             `json:"month" validate:"omitempty,min=1,max=12"`
	Year        *int             `json:"year" validate:"omitempty,min=1900,max=9999"`
}

type PeriodQuery struct {
	Month int `query:"month" json:"month" validate:"required_with=Year,omitempty,min=1,max=12"`
	Year  int `query:"year" json:"year" validate:"required_with=Month,omitempty,min=1900,max=9999"`
}

func (q PeriodQuery) Period() *entity.MonthPeriod {
	if q.Month == 0 && q.Year == 0 {
		return nil
	}
	return &entity.MonthPeriod{Month: q.Month, Year: q.Year}
}

type BudgetResponse struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	LimitAmount string  `json:"limit_amount"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type RemainingResponse struct {
	BudgetID  string `json:"budget_id"`
	Remaining string `json:"remaining"`
	Exceeded  bool   `json:"exceeded"`
}

func NewBudgetResponse(b entity.Budget) BudgetResponse {
	res := BudgetResponse{
		ID:          b.ID,
		CategoryID:  b.CategoryID,
		LimitAmount: money.Format(b.LimitAmount),
		Month:       b.Month,
		Year:        b.Year,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}

	if b.UpdatedAt != nil {
		updatedAt := b.UpdatedAt.Format(time.RFC3339)
		res.UpdatedAt = &updatedAt
	}

	return res
}
