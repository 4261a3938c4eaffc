package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Income struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Source      string          `json:"source"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at"`
}

func (i Income) OwnerID() string {
	return i.UserID
}
