package analyticsHandler

import (
	analyticsService "SmartBudget/internal/api/analytics/service"
	"SmartBudget/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AnalyticsHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	analyticsService analyticsService.IAnalyticsService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	analyticsService analyticsService.IAnalyticsService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) Start(srv fiber.Router) {
	analytics := srv.Group("/analytics", h.middleware.NewTokenMiddleware)

	analytics.Get("/expenses-by-category", h.GetExpensesByCategory)
	analytics.Get("/total-expenses", h.GetTotalExpenses)
	analytics.Get("/total-income", h.GetTotalIncome)
	analytics.Get("/net-balance", h.GetNetBalance)
	analytics.Get("/monthly-trends", h.GetMonthlyTrends)
	analytics.Get("/budget-vs-actual", h.GetBudgetVsActual)
	analytics.Get("/budget-report", h.GetBudgetReport)
	analytics.Get("/summary", h.GetSummary)
	analytics.Get("/export", h.ExportTransactions)
}
