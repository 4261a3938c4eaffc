package expense

import (
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/money"
	"time"

	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	UserID      string          `json:"-" validate:"required"`
	CategoryID  string          `json:"category_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"money"`
	Description string          `json:"description" validate:"max=500"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02,notfuture"`
}

// UpdateExpenseRequest changes only the fields that are present.
type UpdateExpenseRequest struct {
	ID          string           `json:"-" validate:"required"`
	UserID      string           `json:"-" validate:"required"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,min=1"`
	Amount      *decimal.Decimal `json:"amount" validate:"omitempty,money"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Date        *string          `json:"date" validate:"omitempty,datetime=2006-01-02,notfuture"`
}

type PeriodQuery struct {
	Month int `query:"month" json:"month" validate:"required_with=Year,omitempty,min=1,max=12"`
	Year  int `query:"year" json:"year" validate:"required_with=Month,omitempty,min=1900,max=9999"`
}

// Period returns nil when no filter was requested.
func (q PeriodQuery) Period() *entity.MonthPeriod {
	if q.Month == 0 && q.Year == 0 {
		return nil
	}
	return &entity.MonthPeriod{Month: q.Month, Year: q.Year}
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	ReceiptLink string  `json:"receipt_link,omitempty"`
	HasReceipt  bool    `json:"has_receipt"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    string            `json:"total"`
}

type TotalResponse struct {
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Total string `json:"total"`
}

func NewExpenseResponse(e entity.Expense) ExpenseResponse {
	res := ExpenseResponse{
		ID:          e.ID,
		CategoryID:  e.CategoryID,
		Amount:      money.Format(e.Amount),
		Description: e.Description,
		Date:        e.Date.Format(entity.DateLayout),
		ReceiptLink: e.ReceiptLink,
		HasReceipt:  e.ReceiptKey != nil,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}

	if e.UpdatedAt != nil {
		updatedAt := e.UpdatedAt.Format(time.RFC3339)
		res.UpdatedAt = &updatedAt
	}

	return res
}
