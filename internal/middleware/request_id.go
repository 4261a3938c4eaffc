package middleware

import (
	"SmartBudget/pkg/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	RequestIDKey = "X-Request-ID"

	maxRequestIDLength = 64
)

// NewRequestIDMiddleware propagates a caller supplied X-Request-ID or assigns a ULID.
// Ids longer than maxRequestIDLength are replaced so they cannot bloat logs.
func NewRequestIDMiddleware() fiber.Handler {
	ids := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		if requestID == "" || len(requestID) > maxRequestIDLength {
			generated, err := ids.NewULIDFromTimestamp(time.Now())
			if err != nil {
				generated = "unknown"
			}
			requestID = generated
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
