package expense

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var (
	ErrExpenseNotFound           = response.NewError(http.StatusNotFound, "expense not found")
	ErrExpenseNotOwned           = response.NewError(http.StatusForbidden, "expense does not belong to user")
	ErrInvalidAmount             = response.NewError(http.StatusBadRequest, "amount must be greater than zero")
	ErrInvalidDate               = response.NewError(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
	ErrFutureDate                = response.NewError(http.StatusBadRequest, "date cannot be in the future")
	ErrDescriptionTooLong        = response.NewError(http.StatusBadRequest, "description must be at most 500 characters")
	ErrInvalidCategory           = response.NewError(http.StatusBadRequest, "category does not exist")
	ErrInvalidPeriod             = response.NewError(http.StatusBadRequest, "month must be within 1-12 and year must be set")
	ErrInvalidReceipt            = response.NewError(http.StatusBadRequest, "receipt must be a jpeg, png, webp or pdf up to 5MB")
	ErrReceiptStorageUnavailable = response.NewError(http.StatusServiceUnavailable, "receipt storage is not configured")
	ErrFailedToUploadReceipt     = response.NewError(http.StatusInternalServerError, "failed to upload receipt")
	ErrCreateExpense             = response.NewError(http.StatusInternalServerError, "failed to create expense")
	ErrUpdateExpense             = response.NewError(http.StatusInternalServerError, "failed to update expense")
	ErrDeleteExpense             = response.NewError(http.StatusInternalServerError, "failed to delete expense")
)
