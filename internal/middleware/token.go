package middleware

import (
	jwtPkg "SmartBudget/pkg/jwt"
	"SmartBudget/pkg/redis"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const unauthorizedMessage = "Unauthorized, access token invalid or expired"

type tokenMiddleware struct {
	revoked redis.IRedis
}

func newTokenMiddleware(revoked redis.IRedis) *tokenMiddleware {
	return &tokenMiddleware{revoked: revoked}
}

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": unauthorizedMessage,
		})
	}

	user, err := jwtPkg.LoginDataFromClaims(userToken)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": unauthorizedMessage,
		})
	}

	if m.token.revoked != nil {
		c, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()

		revoked, err := m.token.revoked.IsTokenRevoked(c, user.TokenID)
		if err != nil {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to check token revocation")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Unable to verify session",
			})
		}
		if revoked {
			m.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
			}).Warn("Revoked token used")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": unauthorizedMessage,
			})
		}
	}

	ctx.Locals("user", user)

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Debug("Authentication successful")
	return ctx.Next()
}
