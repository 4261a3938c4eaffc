package category

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var (
	ErrCategoryNotFound    = response.NewError(http.StatusNotFound, "category not found")
	ErrCategoryNotOwned    = response.NewError(http.StatusForbidden, "category does not belong to user")
	ErrInvalidCategoryName = response.NewError(http.StatusBadRequest, "category name is required")
	ErrInvalidColor        = response.NewError(http.StatusBadRequest, "color must be a hex color like #1A2B3C")
	ErrCategoryInUse       = response.NewError(http.StatusConflict, "category still has expenses or budgets")
	ErrCreateCategory      = response.NewError(http.StatusInternalServerError, "failed to create category")
	ErrUpdateCategory      = response.NewError(http.StatusInternalServerError, "failed to update category")
	ErrDeleteCategory      = response.NewError(http.StatusInternalServerError, "failed to delete category")
)
