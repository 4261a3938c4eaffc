package budgetService

import (
	"SmartBudget/internal/api/budget"
	budgetRepository "SmartBudget/internal/api/budget/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/internal/testutil"
	"SmartBudget/pkg/utils"
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type BudgetServiceSuite struct {
	suite.Suite
	db         *sqlx.DB
	service    IBudgetService
	ctx        context.Context
	owner      entity.User
	other      entity.User
	food       string
	rent       string
	foreignCat string
}

func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	logger := testutil.NewLogger()
	s.service = New(logger, budgetRepository.New(s.db, logger), utils.New(), WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
	s.owner = testutil.CreateUser(s.T(), s.db)
	s.other = testutil.CreateUser(s.T(), s.db)
	s.food = s.insertCategory(s.owner.ID, "Food")
	s.rent = s.insertCategory(s.owner.ID, "Rent")
	s.foreignCat = s.insertCategory(s.other.ID, "Other")
}

func (s *BudgetServiceSuite) insertCategory(userID, name string) string {
	id := testutil.NewID()
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO categories (id, user_id, name, color_hex, created_at) VALUES (?, ?, ?, ?, ?)`),
		id, userID, name, entity.DefaultCategoryColor, time.Now().UTC())
	s.Require().NoError(err)
	return id
}

func (s *BudgetServiceSuite) insertExpense(userID, categoryID, amount string, date time.Time) {
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO expenses (id, user_id, category_id, amount, description, transaction_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		testutil.NewID(), userID, categoryID, decimal.RequireFromString(amount), "", date, time.Now().UTC())
	s.Require().NoError(err)
}

func (s *BudgetServiceSuite) create(categoryID, limit string, month int) entity.Budget {
	created, err := s.service.CreateBudget(s.ctx, budget.CreateBudgetRequest{
		UserID:      s.owner.ID,
		CategoryID:  categoryID,
		LimitAmount: decimal.RequireFromString(limit),
		Month:       month,
		Year:        2026,
	})
	s.Require().NoError(err)
	return created
}

func (s *BudgetServiceSuite) TestCreateAndGet() {
	created := s.create(s.food, "500", 3)
	s.True(fixedNow.Equal(created.CreatedAt))

	found, err := s.service.GetBudgetByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("500.00", found.LimitAmount.StringFixed(2))
	s.Equal(3, found.Month)
	s.Equal(2026, found.Year)
	s.Equal(s.food, found.CategoryID)

	_, err = s.service.GetBudgetByID(s.ctx, created.ID, s.other.ID)
	s.ErrorIs(err, budget.ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestCreateValidation() {
	cases := []struct {
		name string
		req  budget.CreateBudgetRequest
		err  error
	}{
		{"zero limit", budget.CreateBudgetRequest{CategoryID: s.food, LimitAmount: decimal.Zero, Month: 3, Year: 2026}, budget.ErrInvalidLimit},
		{"month zero", budget.CreateBudgetRequest{CategoryID: s.food, LimitAmount: decimal.NewFromInt(1), Month: 0, Year: 2026}, budget.ErrInvalidMonth},
		{"month thirteen", budget.CreateBudgetRequest{CategoryID: s.food, LimitAmount: decimal.NewFromInt(1), Month: 13, Year: 2026}, budget.ErrInvalidMonth},
		{"past year", budget.CreateBudgetRequest{CategoryID: s.food, LimitAmount: decimal.NewFromInt(1), Month: 3, Year: 2025}, budget.ErrPastYear},
		{"unknown category", budget.CreateBudgetRequest{CategoryID: testutil.NewID(), LimitAmount: decimal.NewFromInt(1), Month: 3, Year: 2026}, budget.ErrInvalidCategory},
		{"foreign category", budget.CreateBudgetRequest{CategoryID: s.foreignCat, LimitAmount: decimal.NewFromInt(1), Month: 3, Year: 2026}, budget.ErrInvalidCategory},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			tc.req.UserID = s.owner.ID
			_, err := s.service.CreateBudget(s.ctx, tc.req)
			s.ErrorIs(err, tc.err)
		})
	}

	all, err := s.service.GetBudgetsByUserID(s.ctx, s.owner.ID, nil)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *BudgetServiceSuite) TestListByPeriod() {
	s.create(s.food, "100", 3)
	s.create(s.rent, "900", 3)
	s.create(s.food, "100", 4)

	march, err := s.service.GetBudgetsByUserID(s.ctx, s.owner.ID, &entity.MonthPeriod{Month: 3, Year: 2026})
	s.Require().NoError(err)
	s.Len(march, 2)

	all, err := s.service.GetBudgetsByUserID(s.ctx, s.owner.ID, nil)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(4, all[0].Month)

	none, err := s.service.GetBudgetsByUserID(s.ctx, s.other.ID, nil)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *BudgetServiceSuite) TestRemainingBudget() {
	b := s.create(s.food, "100", 3)

	s.insertExpense(s.owner.ID, s.food, "30.50", testutil.Date(2026, 3, 1))
	s.insertExpense(s.owner.ID, s.food, "20", testutil.Date(2026, 3, 31))
	s.insertExpense(s.owner.ID, s.food, "999", testutil.Date(2026, 4, 1))
	s.insertExpense(s.owner.ID, s.rent, "999", testutil.Date(2026, 3, 5))

	remaining, err := s.service.RemainingBudget(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("49.50", remaining.StringFixed(2))

	exceeded, err := s.service.IsBudgetExceeded(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)
	s.False(exceeded)

	s.insertExpense(s.owner.ID, s.food, "60", testutil.Date(2026, 3, 9))

	remaining, err = s.service.RemainingBudget(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("-10.50", remaining.StringFixed(2))

	exceeded, err = s.service.IsBudgetExceeded(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)
	s.True(exceeded)

	_, err = s.service.RemainingBudget(s.ctx, b.ID, s.other.ID)
	s.ErrorIs(err, budget.ErrBudgetNotOwned)

	_, err = s.service.RemainingBudget(s.ctx, testutil.NewID(), s.owner.ID)
	s.ErrorIs(err, budget.ErrBudgetNotOwned)
}

func (s *BudgetServiceSuite) TestRemainingAfterDeleteFails() {
	b := s.create(s.food, "100", 3)
	s.insertExpense(s.owner.ID, s.food, "40", testutil.Date(2026, 3, 4))

	_, err := s.service.RemainingBudget(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteBudget(s.ctx, b.ID, s.owner.ID))

	_, err = s.service.RemainingBudget(s.ctx, b.ID, s.owner.ID)
	s.ErrorIs(err, budget.ErrBudgetNotOwned)

	_, err = s.service.IsBudgetExceeded(s.ctx, b.ID, s.owner.ID)
	s.ErrorIs(err, budget.ErrBudgetNotOwned)
}

func (s *BudgetServiceSuite) TestRemainingExactlyAtLimitIsNotExceeded() {
	b := s.create(s.food, "100", 3)
	s.insertExpense(s.owner.ID, s.food, "100", testutil.Date(2026, 3, 2))

	exceeded, err := s.service.IsBudgetExceeded(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)
	s.False(exceeded)
}

func (s *BudgetServiceSuite) TestPartialUpdate() {
	b := s.create(s.food, "100", 3)

	limit := decimal.RequireFromString("250.555")
	updated, err := s.service.UpdateBudget(s.ctx, budget.UpdateBudgetRequest{ID: b.ID, UserID: s.owner.ID, LimitAmount: &limit})
	s.Require().NoError(err)
	s.Equal("250.56", updated.LimitAmount.StringFixed(2))
	s.Equal(3, updated.Month)
	s.Equal(s.food, updated.CategoryID)
	s.Require().NotNil(updated.UpdatedAt)

	found, err := s.service.GetBudgetByID(s.ctx, b.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("250.56", found.LimitAmount.StringFixed(2))
	s.NotNil(found.UpdatedAt)

	month := 13
	_, err = s.service.UpdateBudget(s.ctx, budget.UpdateBudgetRequest{ID: b.ID, UserID: s.owner.ID, Month: &month})
	s.ErrorIs(err, budget.ErrInvalidMonth)

	pastYear := 2024
	_, err = s.service.UpdateBudget(s.ctx, budget.UpdateBudgetRequest{ID: b.ID, UserID: s.owner.ID, Year: &pastYear})
	s.ErrorIs(err, budget.ErrPastYear)

	_, err = s.service.UpdateBudget(s.ctx, budget.UpdateBudgetRequest{ID: b.ID, UserID: s.owner.ID, CategoryID: &s.foreignCat})
	s.ErrorIs(err, budget.ErrInvalidCategory)
}

func (s *BudgetServiceSuite) TestUpdateKeepsStoredPastYear() {
	id := testutil.NewID()
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO budgets (id, user_id, category_id, limit_amount, month, year, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id, s.owner.ID, s.food, decimal.NewFromInt(100), 12, 2025, time.Now().UTC())
	s.Require().NoError(err)

	year := 2025
	limit := decimal.NewFromInt(150)
	updated, err := s.service.UpdateBudget(s.ctx, budget.UpdateBudgetRequest{ID: id, UserID: s.owner.ID, Year: &year, LimitAmount: &limit})
	s.Require().NoError(err)
	s.Equal(2025, updated.Year)
}

func (s *BudgetServiceSuite) TestOwnershipOnMutations() {
	b := s.create(s.food, "100", 3)
	limit := decimal.NewFromInt(1)

	_, err := s.service.UpdateBudget(s.ctx, budget.UpdateBudgetRequest{ID: b.ID, UserID: s.other.ID, LimitAmount: &limit})
	s.ErrorIs(err, budget.ErrBudgetNotOwned)

	s.ErrorIs(s.service.DeleteBudget(s.ctx, b.ID, s.other.ID), budget.ErrBudgetNotOwned)
	s.Require().NoError(s.service.DeleteBudget(s.ctx, b.ID, s.owner.ID))
	s.ErrorIs(s.service.DeleteBudget(s.ctx, b.ID, s.owner.ID), budget.ErrBudgetNotOwned)
}
