package expenseHandler

import (
	expenseService "SmartBudget/internal/api/expense/service"
	"SmartBudget/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExpenseHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	expenseService expenseService.IExpenseService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	expenseService expenseService.IExpenseService,
) *ExpenseHandler {
	return &ExpenseHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		expenseService: expenseService,
	}
}

func (h *ExpenseHandler) Start(srv fiber.Router) {
	expenses := srv.Group("/expenses", h.middleware.NewTokenMiddleware)

	expenses.Get("", h.GetExpenses)
	expenses.Post("", h.CreateExpense)
	expenses.Get("/total", h.GetTotalExpenses)
	expenses.Get("/:id", h.GetExpenseByID)
	expenses.Patch("/:id", h.UpdateExpense)
	expenses.Delete("/:id", h.DeleteExpense)
}
