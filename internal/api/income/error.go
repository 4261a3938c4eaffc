package income

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var (
	ErrIncomeNotFound     = response.NewError(http.StatusNotFound, "income not found")
	ErrIncomeNotOwned     = response.NewError(http.StatusForbidden, "income does not belong to user")
	ErrInvalidAmount      = response.NewError(http.StatusBadRequest, "amount must be greater than zero")
	ErrInvalidSource      = response.NewError(http.StatusBadRequest, "source is required and must be at most 100 characters")
	ErrInvalidDate        = response.NewError(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrFutureDate         = response.NewError(http.StatusBadRequest, "date cannot be in the future")
	ErrInvalidDateRange   = response.NewError(http.StatusBadRequest, "start_date must not be after end_date")
	ErrDescriptionTooLong = response.NewError(http.StatusBadRequest, "description must be at most 500 characters")
	ErrInvalidPeriod      = response.NewError(http.StatusBadRequest, "month must be within 1-12 and year must be set")
	ErrCreateIncome       = response.NewError(http.StatusInternalServerError, "failed to create income")
	ErrUpdateIncome       = response.NewError(http.StatusInternalServerError, "failed to update income")
	ErrDeleteIncome       = response.NewError(http.StatusInternalServerError, "failed to delete income")
)
