package jwtPkg

import (
	"SmartBudget/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"

var (
	ErrMissingHeader   = errors.New("empty Authorization header")
	ErrInvalidFormat   = errors.New("invalid Authorization format")
	ErrSecretNotSet    = errors.New("JWT secret not configured")
	ErrMissingClaims   = errors.New("token claims are missing required fields")
	ErrUnexpectedClaim = errors.New("invalid token claims")
)

// Sign issues an HS256 token carrying data plus exp and a random jti.
func Sign(data map[string]interface{}, expiresIn time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(expiresIn).Unix()

	secret := os.Getenv(AccessTokenSecret)
	if secret == "" {
		return "", 0, fmt.Errorf("%s not set", AccessTokenSecret)
	}

	claims := jwt.MapClaims{}
	for k, v := range data {
		claims[k] = v
	}

	// Reserved claims are set last so data cannot override them.
	claims["exp"] = expiredAt
	claims["jti"] = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := token.SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	header := c.Get("Authorization")
	if header == "" {
		return nil, ErrMissingHeader
	}

	parts := strings.Split(header, "Bearer ")
	if len(parts) != 2 {
		return nil, ErrInvalidFormat
	}

	accessToken := strings.TrimSpace(parts[1])
	if accessToken == "" {
		return nil, ErrInvalidFormat
	}

	return Parse(accessToken, secretEnvKey)
}

func Parse(accessToken string, secretEnvKey string) (*jwt.Token, error) {
	secret := os.Getenv(secretEnvKey)
	if secret == "" {
		return nil, ErrSecretNotSet
	}

	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
}

// LoginDataFromClaims extracts the user identity the token middleware stores in fiber locals.
func LoginDataFromClaims(token *jwt.Token) (entity.UserLoginData, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.UserLoginData{}, ErrUnexpectedClaim
	}

	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)
	jti, _ := claims["jti"].(string)
	if id == "" || email == "" || jti == "" {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	return entity.UserLoginData{
		ID:        id,
		Email:     email,
		Username:  username,
		TokenID:   jti,
		ExpiresAt: exp.Time,
	}, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	user, ok := c.Locals("user").(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
