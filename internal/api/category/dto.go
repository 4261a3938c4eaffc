package category

import (
	"SmartBudget/internal/entity"
	"time"
)

type CreateCategoryRequest struct {
	UserID      string  `json:"-" validate:"required"`
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ColorHex    string  `json:"color_hex" validate:"omitempty,hexcolor"`
}

// UpdateCategoryRequest changes only the fields that are present.
type UpdateCategoryRequest struct {
	ID          string  `json:"-" validate:"required"`
	UserID      string  `json:"-" validate:"required"`
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ColorHex    *string `json:"color_hex" validate:"omitempty,hexcolor"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ColorHex    string  `json:"color_hex"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

func NewCategoryResponse(c entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ColorHex:    c.ColorHex,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   formatOptionalTime(c.UpdatedAt),
	}
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
