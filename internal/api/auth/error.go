package auth

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var (
	ErrEmailAlreadyExists     = response.NewError(http.StatusConflict, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(http.StatusBadRequest, "email or password is wrong")
	ErrUserNotFound           = response.NewError(http.StatusNotFound, "user not found")
	ErrRevocationUnavailable  = response.NewError(http.StatusServiceUnavailable, "token revocation is not configured")
	ErrFailedToRevokeToken    = response.NewError(http.StatusInternalServerError, "failed to revoke token")
)
