package analyticsHandler

import (
	"SmartBudget/internal/api/analytics"
	contextPkg "SmartBudget/pkg/context"
	"SmartBudget/pkg/handlerUtil"
	jwtPkg "SmartBudget/pkg/jwt"
	"SmartBudget/pkg/money"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *AnalyticsHandler) parseWindow(ctx *fiber.Ctx) (*time.Time, *time.Time, error) {
	var query analytics.DateWindowQuery
	if err := ctx.QueryParser(&query); err != nil {
		return nil, nil, err
	}
	if err := h.validator.Struct(query); err != nil {
		return nil, nil, err
	}
	start, end := query.Bounds()
	return start, end, nil
}

func (h *AnalyticsHandler) GetExpensesByCategory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	start, end, err := h.parseWindow(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analyticsService.ExpensesByCategory(c, userData.ID, start, end)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "expenses_by_category")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.FormatAmounts(result))
	}
}

func (h *AnalyticsHandler) GetTotalExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	start, end, err := h.parseWindow(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analyticsService.TotalExpenses(c, userData.ID, start, end)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "total_expenses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.TotalResponse{Total: money.Format(result)})
	}
}

func (h *AnalyticsHandler) GetTotalIncome(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	start, end, err := h.parseWindow(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analyticsService.TotalIncome(c, userData.ID, start, end)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "total_income")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.TotalResponse{Total: money.Format(result)})
	}
}

func (h *AnalyticsHandler) GetNetBalance(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	start, end, err := h.parseWindow(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analyticsService.NetBalance(c, userData.ID, start, end)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "net_balance")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.NetBalanceResponse{NetBalance: money.Format(result)})
	}
}

func (h *AnalyticsHandler) GetSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	start, end, err := h.parseWindow(ctx)
	if err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.analyticsService.Summary(c, userData.ID, start, end)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.NewSummaryResponse(result))
	}
}

func (h *AnalyticsHandler) GetMonthlyTrends(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var query analytics.TrendsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if query.Months == 0 {
		query.Months = analytics.DefaultTrendMonths
	}

	trends, err := h.analyticsService.MonthlyTrends(c, userData.ID, query.Months)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "monthly_trends")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.NewMonthlyTrendResponses(trends))
	}
}

func (h *AnalyticsHandler) GetBudgetVsActual(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	result, err := h.analyticsService.BudgetVsActual(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "budget_vs_actual")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, budgetVsActualResponse(result))
	}
}

func (h *AnalyticsHandler) GetBudgetReport(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	result, err := h.analyticsService.BudgetReport(c, userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "budget_report")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, analytics.NewBudgetReportResponses(result))
	}
}

func (h *AnalyticsHandler) ExportTransactions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var query analytics.ExportQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	data, err := h.analyticsService.ExportTransactions(c, userData.ID, query.Period())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "export_transactions")
	}

	fileName := "transactions_all.xlsx"
	if period := query.Period(); period != nil {
		fileName = fmt.Sprintf("transactions_%04d-%02d.xlsx", period.Year, period.Month)
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		ctx.Attachment(fileName)
		ctx.Set(fiber.HeaderContentType, xlsxContentType)
		return ctx.Status(fiber.StatusOK).Send(data)
	}
}

// budgetVsActualResponse keeps the exceeded sentinel as the plain number -1.
func budgetVsActualResponse(result map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(result))
	for key, value := range result {
		if value.Equal(decimal.NewFromInt(analytics.ExceededSentinel)) {
			out[key] = value.String()
			continue
		}
		out[key] = money.Format(value)
	}
	return out
}
