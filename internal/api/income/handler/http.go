package incomeHandler

import (
	incomeService "SmartBudget/internal/api/income/service"
	"SmartBudget/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type IncomeHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	incomeService incomeService.IIncomeService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	incomeService incomeService.IIncomeService,
) *IncomeHandler {
	return &IncomeHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		incomeService: incomeService,
	}
}

func (h *IncomeHandler) Start(srv fiber.Router) {
	incomes := srv.Group("/incomes", h.middleware.NewTokenMiddleware)

	incomes.Get("", h.GetIncomes)
	incomes.Post("", h.CreateIncome)
	incomes.Get("/total", h.GetTotalIncome)
	incomes.Get("/:id", h.GetIncomeByID)
	incomes.Patch("/:id", h.UpdateIncome)
	incomes.Delete("/:id", h.DeleteIncome)
}
