package income

import (
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/money"
	"time"

	"github.com/shopspring/decimal"
)

type CreateIncomeRequest struct {
	UserID      string          `json:"-" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"money"`
	Description string          `json:"description" validate:"max=500"`
	Source      string          `json:"source" validate:"required,max=100"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02,notfuture"`
}

// UpdateIncomeRequest changes only the fields that are present.
type UpdateIncomeRequest struct {
	ID          string           `json:"-" validate:"required"`
	UserID      string           `json:"-" validate:"required"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,money"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Source      *string          `json:"source" validate:"omitempty,min=1,max=100"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02,notfuture"`
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

// DateWindowQuery is an optional inclusive window of calendar days.
type DateWindowQuery struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// Bounds parses the window; it expects the struct to have passed validation.
func (q DateWindowQuery) Bounds() (start *time.Time, end *time.Time) {
	if d, err := entity.ParseDate(q.StartDate); err == nil {
		start = &d
	}
	if d, err := entity.ParseDate(q.EndDate); err == nil {
		end = &d
	}
	return start, end
}

type IncomeResponse struct {
	ID          string  `json:"id"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	Source      string  `json:"source"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type IncomeListResponse struct {
	Incomes []IncomeResponse `json:"incomes"`
	Total   string           `json:"total"`
}

type TotalResponse struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Total     string  `json:"total"`
}

func NewIncomeResponse(i entity.Income) IncomeResponse {
	res := IncomeResponse{
		ID:          i.ID,
		Amount:      money.Format(i.Amount),
		Description: i.Description,
		Source:      i.Source,
		Date:        i.Date.Format(entity.DateLayout),
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
	}

	if i.UpdatedAt != nil {
		updatedAt := i.UpdatedAt.Format(time.RFC3339)
		res.UpdatedAt = &updatedAt
	}

	return res
}
