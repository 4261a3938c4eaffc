package analytics

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var (
	ErrInvalidDateRange = response.NewError(http.StatusBadRequest, "start_date must not be after end_date")
	ErrInvalidMonths    = response.NewError(http.StatusBadRequest, "months must be within 1-120")
	ErrInvalidPeriod    = response.NewError(http.StatusBadRequest, "month must be within 1-12 and year must be set")
	ErrExportFailed     = response.NewError(http.StatusInternalServerError, "failed to export transactions")
)
