package analyticsHandler_test

import (
	analyticsHandler "SmartBudget/internal/api/analytics/handler"
	analyticsService "SmartBudget/internal/api/analytics/service"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	categoryRepository "SmartBudget/internal/api/category/repository"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	incomeRepository "SmartBudget/internal/api/income/repository"
	"SmartBudget/internal/config"
	"SmartBudget/internal/entity"
	"SmartBudget/internal/middleware"
	"SmartBudget/internal/testutil"
	jwtPkg "SmartBudget/pkg/jwt"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	app   *fiber.App
	db    *sqlx.DB
	user  entity.User
	token string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "analytics-test-secret")

	db := testutil.NewDB(t)
	logger := testutil.NewLogger()
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	svc := analyticsService.New(logger,
		expenseRepository.New(db, logger),
		incomeRepository.New(db, logger),
		budgetRepository.New(db, logger),
		categoryRepository.New(db, logger),
		analyticsService.WithClock(func() time.Time { return now }),
	)
	mw := middleware.New(logger, nil)

	app := config.NewFiber(logger)
	app.Use(mw.NewRequestIDMiddleware())
	analyticsHandler.New(logger, config.NewValidator(), mw, svc).Start(app.Group("/api/v1"))

	user := testutil.CreateUser(t, db)
	token, _, err := jwtPkg.Sign(map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	}, time.Hour)
	require.NoError(t, err)

	return fixture{app: app, db: db, user: user, token: token}
}

func (f fixture) seed(t *testing.T) (within string, exceeded string) {
	t.Helper()

	category := testutil.NewID()
	_, err := f.db.Exec(f.db.Rebind(`INSERT INTO categories (id, user_id, name, color_hex, created_at) VALUES (?, ?, ?, ?, ?)`),
		category, f.user.ID, "Food", entity.DefaultCategoryColor, time.Now().UTC())
	require.NoError(t, err)

	_, err = f.db.Exec(f.db.Rebind(`INSERT INTO expenses (id, user_id, category_id, amount, description, transaction_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		testutil.NewID(), f.user.ID, category, decimal.RequireFromString("75.25"), "groceries", testutil.Date(2026, 3, 3), time.Now().UTC())
	require.NoError(t, err)

	within, exceeded = testutil.NewID(), testutil.NewID()
	for id, limit := range map[string]string{within: "100", exceeded: "50"} {
		_, err = f.db.Exec(f.db.Rebind(`INSERT INTO budgets (id, user_id, category_id, limit_amount, month, year, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
			id, f.user.ID, category, decimal.RequireFromString(limit), 3, 2026, time.Now().UTC())
		require.NoError(t, err)
	}

	return within, exceeded
}

func (f fixture) get(t *testing.T, path string, auth bool) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, jsoniter.Unmarshal(raw, out), string(raw))
}

func TestAnalyticsRequiresToken(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/api/v1/analytics/summary", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBudgetVsActualKeepsSentinel(t *testing.T) {
	f := newFixture(t)
	within, exceeded := f.seed(t)

	resp := f.get(t, "/api/v1/analytics/budget-vs-actual", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "24.75", body["Budget_"+within])
	assert.Equal(t, "-1", body["Budget_"+exceeded])
}

func TestBudgetReport(t *testing.T) {
	f := newFixture(t)
	_, exceeded := f.seed(t)

	resp := f.get(t, "/api/v1/analytics/budget-report", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	decode(t, resp, &body)
	require.Len(t, body, 2)
	for _, item := range body {
		if item["budget_id"] == exceeded {
			assert.Equal(t, "exceeded", item["status"])
			assert.Equal(t, "25.25", item["overage"])
			assert.NotContains(t, item, "remaining")
		} else {
			assert.Equal(t, "within", item["status"])
			assert.Equal(t, "24.75", item["remaining"])
		}
	}
}

func TestMonthlyTrendsDefaultsToTwelveMonths(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	resp := f.get(t, "/api/v1/analytics/monthly-trends", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]string
	decode(t, resp, &body)
	require.Len(t, body, 12)
	assert.Equal(t, "2025-04", body[0]["month"])
	assert.Equal(t, "2026-03", body[11]["month"])
	assert.Equal(t, "-75.25", body[11]["balance"])

	resp = f.get(t, "/api/v1/analytics/monthly-trends?months=121", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWindowValidation(t *testing.T) {
	f := newFixture(t)

	resp := f.get(t, "/api/v1/analytics/total-expenses?start_date=03-01-2026", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.get(t, "/api/v1/analytics/net-balance?start_date=2026-03-02&end_date=2026-03-01", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummaryAndTotals(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	resp := f.get(t, "/api/v1/analytics/total-expenses?start_date=2026-03-03&end_date=2026-03-03", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var total map[string]string
	decode(t, resp, &total)
	assert.Equal(t, "75.25", total["total"])

	resp = f.get(t, "/api/v1/analytics/summary", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary struct {
		TotalIncome   string            `json:"total_income"`
		TotalExpenses string            `json:"total_expenses"`
		NetBalance    string            `json:"net_balance"`
		ByCategory    map[string]string `json:"by_category"`
	}
	decode(t, resp, &summary)
	assert.Equal(t, "0.00", summary.TotalIncome)
	assert.Equal(t, "-75.25", summary.NetBalance)
	assert.Equal(t, "75.25", summary.ByCategory["Food"])
}

func TestExportDownload(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	resp := f.get(t, "/api/v1/analytics/export?month=3&year=2026", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "transactions_2026-03.xlsx")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	book, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "groceries", rows[1][2])

	resp = f.get(t, "/api/v1/analytics/export?month=3", true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
