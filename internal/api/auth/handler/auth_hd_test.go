package authHandler_test

import (
	authHandler "SmartBudget/internal/api/auth/handler"
	authRepository "SmartBudget/internal/api/auth/repository"
	authService "SmartBudget/internal/api/auth/service"
	"SmartBudget/internal/config"
	"SmartBudget/internal/middleware"
	"SmartBudget/internal/testutil"
	"SmartBudget/pkg/bcrypt"
	jwtPkg "SmartBudget/pkg/jwt"
	"SmartBudget/pkg/utils"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (m *memoryRevocations) RevokeToken(_ context.Context, tokenID string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = expiration
	return nil
}

func (m *memoryRevocations) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func newAuthApp(t *testing.T) (*fiber.App, *memoryRevocations) {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "handler-test-secret")

	db := testutil.NewDB(t)
	logger := testutil.NewLogger()
	revocations := &memoryRevocations{revoked: map[string]time.Duration{}}

	svc := authService.New(logger, authRepository.New(db, logger), revocations, bcrypt.NewWithCost(4), utils.New())
	mw := middleware.New(logger, revocations)

	app := config.NewFiber(logger)
	app.Use(mw.NewRequestIDMiddleware())
	authHandler.New(logger, svc, config.NewValidator(), mw).Start(app.Group("/api/v1"))

	return app, revocations
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, jsoniter.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestRegisterLoginMeLogout(t *testing.T) {
	app, revocations := newAuthApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/users",
		`{"email":" Ana@Example.com ","username":"ana","password":"supersecret"}`, "")
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "ana@example.com", body["email"])
	assert.NotContains(t, body, "password")

	status, _ = do(t, app, http.MethodPost, "/api/v1/users",
		`{"email":"ana@example.com","username":"other","password":"supersecret"}`, "")
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"supersecret"}`, "")
	require.Equal(t, http.StatusOK, status, body)
	token, ok := body["accessToken"].(string)
	require.True(t, ok)
	assert.InDelta(t, 60, body["expiresInMinutes"], 1)

	status, body = do(t, app, http.MethodGet, "/api/v1/users/me", "", token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "ana", body["username"])

	status, _ = do(t, app, http.MethodPost, "/api/v1/auth/logout", "", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, revocations.revoked, 1)
	for _, ttl := range revocations.revoked {
		assert.Greater(t, ttl, 55*time.Minute)
	}

	status, _ = do(t, app, http.MethodGet, "/api/v1/users/me", "", token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newAuthApp(t)

	status, body := do(t, app, http.MethodPost, "/api/v1/users", `{"email":"not-an-email","username":"ab","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Len(t, body["details"], 3)
}

func TestMeRequiresToken(t *testing.T) {
	app, _ := newAuthApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
