package entity

import "time"

const (
	DefaultCategoryColor  = "#000000"
	MaxCategoryNameLength = 50
	MaxDescriptionLength  = 500
	MaxIncomeSourceLength = 100
	UnknownCategoryName   = "Unknown"
)

type Category struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	ColorHex    string     `json:"color_hex"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (c Category) OwnerID() string {
	return c.UserID
}
