package budget

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var (
	ErrBudgetNotFound  = response.NewError(http.StatusNotFound, "budget not found")
	ErrBudgetNotOwned  = response.NewError(http.StatusForbidden, "budget does not belong to user")
	ErrInvalidLimit    = response.NewError(http.StatusBadRequest, "limit_amount must be greater than zero")
	ErrInvalidMonth    = response.NewError(http.StatusBadRequest, "month must be within 1-12")
	ErrPastYear        = response.NewError(http.StatusBadRequest, "year cannot be before the current year")
	ErrInvalidCategory = response.NewError(http.StatusBadRequest, "category does not exist")
	ErrCreateBudget    = response.NewError(http.StatusInternalServerError, "failed to create budget")
	ErrUpdateBudget    = response.NewError(http.StatusInternalServerError, "failed to update budget")
	ErrDeleteBudget    = response.NewError(http.StatusInternalServerError, "failed to delete budget")
)
