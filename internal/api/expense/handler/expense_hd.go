package expenseHandler

import (
	"SmartBudget/internal/api/expense"
	contextPkg "SmartBudget/pkg/context"
	"SmartBudget/pkg/handlerUtil"
	jwtPkg "SmartBudget/pkg/jwt"
	"SmartBudget/pkg/log"
	"SmartBudget/pkg/money"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func (h *ExpenseHandler) CreateExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create expense request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var (
		req     expense.CreateExpenseRequest
		receipt *multipart.FileHeader
	)

	if isMultipart(ctx) {
		amount, err := decimal.NewFromString(ctx.FormValue("amount"))
		if err != nil {
			return errHandler.HandleValidationError(ctx, requestID, errors.New("amount must be a decimal number"), ctx.Path())
		}
		req = expense.CreateExpenseRequest{
			CategoryID:  ctx.FormValue("category_id"),
			Amount:      amount,
			Description: ctx.FormValue("description"),
			Date:        ctx.FormValue("date"),
		}
		receipt, _ = ctx.FormFile("receipt")
	} else if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	created, err := h.expenseService.CreateExpense(c, req, receipt)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, expense.NewExpenseResponse(created))
	}
}

func (h *ExpenseHandler) GetExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var query expense.PeriodQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	expenses, err := h.expenseService.GetExpensesByUserID(c, userData.ID, query.Period())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_expenses")
	}

	response := expense.ExpenseListResponse{
		Expenses: make([]expense.ExpenseResponse, 0, len(expenses)),
	}
	total := decimal.Zero
	for _, e := range expenses {
		response.Expenses = append(response.Expenses, expense.NewExpenseResponse(e))
		total = total.Add(e.Amount)
	}
	response.Total = money.Format(total)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *ExpenseHandler) GetTotalExpenses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var query expense.PeriodQuery
	if err := ctx.QueryParser(&query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if query.Month == 0 || query.Year == 0 {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("month and year are required"), ctx.Path())
	}
	if err := h.validator.Struct(query); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	total, err := h.expenseService.TotalExpensesByUser(c, userData.ID, query.Month, query.Year)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_total_expenses")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expense.TotalResponse{
			Month: query.Month,
			Year:  query.Year,
			Total: money.Format(total),
		})
	}
}

func (h *ExpenseHandler) GetExpenseByID(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	found, err := h.expenseService.GetExpenseByID(c, ctx.Params("id"), userData.ID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expense.NewExpenseResponse(found))
	}
}

func (h *ExpenseHandler) UpdateExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing update expense request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var (
		req     expense.UpdateExpenseRequest
		receipt *multipart.FileHeader
	)

	if isMultipart(ctx) {
		req, err = updateRequestFromForm(ctx)
		if err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
		receipt, _ = ctx.FormFile("receipt")
	} else if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	req.ID = ctx.Params("id")
	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	updated, err := h.expenseService.UpdateExpense(c, req, receipt)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, expense.NewExpenseResponse(updated))
	}
}

func (h *ExpenseHandler) DeleteExpense(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.expenseService.DeleteExpense(c, ctx.Params("id"), userData.ID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_expense")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Expense deleted successfully",
		})
	}
}

func isMultipart(ctx *fiber.Ctx) bool {
	return strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// updateRequestFromForm keeps absent form fields nil so they are left untouched.
func updateRequestFromForm(ctx *fiber.Ctx) (expense.UpdateExpenseRequest, error) {
	var req expense.UpdateExpenseRequest

	form, err := ctx.MultipartForm()
	if err != nil {
		return req, err
	}

	value := func(key string) *string {
		if values, ok := form.Value[key]; ok && len(values) > 0 {
			v := values[0]
			return &v
		}
		return nil
	}

	req.CategoryID = value("category_id")
	req.Description = value("description")
	req.Date = value("date")

	if raw := value("amount"); raw != nil {
		amount, err := decimal.NewFromString(*raw)
		if err != nil {
			return req, errors.New("amount must be a decimal number")
		}
		req.Amount = &amount
	}

	return req, nil
}
