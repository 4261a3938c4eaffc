package entity

import (
	"SmartBudget/pkg/response"
	"net/http"
)

var ErrNotOwned = response.NewError(http.StatusForbidden, "record does not belong to user")

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	OwnerID() string
}

// CheckOwner returns ErrNotOwned unless record belongs to userID. An empty userID never owns anything.
func CheckOwner(record Owned, userID string) error {
	if record == nil || userID == "" || record.OwnerID() != userID {
		return ErrNotOwned
	}
	return nil
}
