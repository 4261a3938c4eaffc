package incomeService

import (
	"SmartBudget/internal/api/income"
	incomeRepository "SmartBudget/internal/api/income/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/internal/testutil"
	"SmartBudget/pkg/utils"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type IncomeServiceSuite struct {
	suite.Suite
	service IIncomeService
	ctx     context.Context
	owner   entity.User
	other   entity.User
}

func TestIncomeServiceSuite(t *testing.T) {
	suite.Run(t, new(IncomeServiceSuite))
}

func (s *IncomeServiceSuite) SetupTest() {
	db := testutil.NewDB(s.T())
	logger := testutil.NewLogger()
	s.service = New(logger, incomeRepository.New(db, logger), utils.New())
	s.ctx = context.Background()
	s.owner = testutil.CreateUser(s.T(), db)
	s.other = testutil.CreateUser(s.T(), db)
}

func (s *IncomeServiceSuite) create(amount, date string) entity.Income {
	created, err := s.service.CreateIncome(s.ctx, income.CreateIncomeRequest{
		UserID:      s.owner.ID,
		Amount:      decimal.RequireFromString(amount),
		Description: gofakeit.Sentence(4),
		Source:      gofakeit.Company(),
		Date:        date,
	})
	s.Require().NoError(err)
	return created
}

func (s *IncomeServiceSuite) TestCreateAndGet() {
	created := s.create("2500.00", "2026-01-25")

	found, err := s.service.GetIncomeByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(created.Source, found.Source)
	s.Equal("2500.00", found.Amount.StringFixed(2))
	s.Equal(testutil.Date(2026, 1, 25), found.Date)
	s.Nil(found.UpdatedAt)
}

func (s *IncomeServiceSuite) TestCreateValidation() {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(entity.DateLayout)

	_, err := s.service.CreateIncome(s.ctx, income.CreateIncomeRequest{UserID: s.owner.ID, Amount: decimal.Zero, Source: "Job", Date: "2026-01-01"})
	s.ErrorIs(err, income.ErrInvalidAmount)

	_, err = s.service.CreateIncome(s.ctx, income.CreateIncomeRequest{UserID: s.owner.ID, Amount: decimal.NewFromInt(1), Source: "  ", Date: "2026-01-01"})
	s.ErrorIs(err, income.ErrInvalidSource)

	_, err = s.service.CreateIncome(s.ctx, income.CreateIncomeRequest{UserID: s.owner.ID, Amount: decimal.NewFromInt(1), Source: strings.Repeat("x", 101), Date: "2026-01-01"})
	s.ErrorIs(err, income.ErrInvalidSource)

	_, err = s.service.CreateIncome(s.ctx, income.CreateIncomeRequest{UserID: s.owner.ID, Amount: decimal.NewFromInt(1), Source: "Job", Date: tomorrow})
	s.ErrorIs(err, income.ErrFutureDate)
}

func (s *IncomeServiceSuite) TestTotalIncomeWindow() {
	s.create("100", "2026-01-01")
	s.create("200", "2026-01-31")
	s.create("300", "2026-02-01")

	all, err := s.service.TotalIncome(s.ctx, s.owner.ID, nil, nil)
	s.Require().NoError(err)
	s.Equal("600.00", all.StringFixed(2))

	start := testutil.Date(2026, 1, 1)
	end := testutil.Date(2026, 1, 31)
	january, err := s.service.TotalIncome(s.ctx, s.owner.ID, &start, &end)
	s.Require().NoError(err)
	s.Equal("300.00", january.StringFixed(2))

	fromFeb := testutil.Date(2026, 2, 1)
	tail, err := s.service.TotalIncome(s.ctx, s.owner.ID, &fromFeb, nil)
	s.Require().NoError(err)
	s.Equal("300.00", tail.StringFixed(2))

	none, err := s.service.TotalIncome(s.ctx, s.other.ID, nil, nil)
	s.Require().NoError(err)
	s.True(none.IsZero())

	_, err = s.service.TotalIncome(s.ctx, s.owner.ID, &end, &start)
	s.ErrorIs(err, income.ErrInvalidDateRange)
}

func (s *IncomeServiceSuite) TestListByMonth() {
	s.create("100", "2026-01-01")
	s.create("300", "2026-02-01")

	jan, err := s.service.GetIncomesByUserID(s.ctx, s.owner.ID, &entity.MonthPeriod{Month: 1, Year: 2026})
	s.Require().NoError(err)
	s.Require().Len(jan, 1)
	s.Equal("100.00", jan[0].Amount.StringFixed(2))

	all, err := s.service.GetIncomesByUserID(s.ctx, s.owner.ID, nil)
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *IncomeServiceSuite) TestPartialUpdateAndOwnership() {
	created := s.create("100", "2026-01-01")

	source := "Freelance"
	updated, err := s.service.UpdateIncome(s.ctx, income.UpdateIncomeRequest{ID: created.ID, UserID: s.owner.ID, Source: &source})
	s.Require().NoError(err)
	s.Equal("Freelance", updated.Source)
	s.Equal("100.00", updated.Amount.StringFixed(2))
	s.NotNil(updated.UpdatedAt)

	_, err = s.service.GetIncomeByID(s.ctx, created.ID, s.other.ID)
	s.ErrorIs(err, income.ErrIncomeNotFound)

	_, err = s.service.UpdateIncome(s.ctx, income.UpdateIncomeRequest{ID: created.ID, UserID: s.other.ID, Source: &source})
	s.ErrorIs(err, income.ErrIncomeNotOwned)

	s.ErrorIs(s.service.DeleteIncome(s.ctx, created.ID, s.other.ID), income.ErrIncomeNotOwned)
	s.Require().NoError(s.service.DeleteIncome(s.ctx, created.ID, s.owner.ID))
	s.ErrorIs(s.service.DeleteIncome(s.ctx, created.ID, s.owner.ID), income.ErrIncomeNotOwned)
}
