package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	ReceiptKey  *string         `json:"-"`
	ReceiptLink string          `json:"receipt_link,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
}

func (e Expense) OwnerID() string {
	return e.UserID
}
