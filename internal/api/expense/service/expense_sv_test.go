package expenseService

import (
	"SmartBudget/internal/api/expense"
	expenseRepository "SmartBudget/internal/api/expense/repository"
	"SmartBudget/internal/entity"
	"SmartBudget/internal/testutil"
	"SmartBudget/pkg/utils"
	"context"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type fakeReceipts struct {
	mu      sync.Mutex
	objects map[string]bool
}

func newFakeReceipts() *fakeReceipts {
	return &fakeReceipts{objects: map[string]bool{}}
}

func (f *fakeReceipts) UploadReceipt(_ context.Context, key string, _ *multipart.FileHeader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = true
	return nil
}

func (f *fakeReceipts) PresignURL(key string) (string, error) {
	return "https://receipts.example.com/" + key + "?signed", nil
}

func (f *fakeReceipts) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeReceipts) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[key]
}

func receiptHeader(name, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: name, Header: header, Size: size}
}

type ExpenseServiceSuite struct {
	suite.Suite
	db         *sqlx.DB
	receipts   *fakeReceipts
	service    IExpenseService
	ctx        context.Context
	owner      entity.User
	other      entity.User
	categoryID string
	foreignCat string
}

func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceSuite))
}

func (s *ExpenseServiceSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	logger := testutil.NewLogger()
	s.receipts = newFakeReceipts()
	s.service = New(logger, expenseRepository.New(s.db, logger), s.receipts, utils.New())
	s.ctx = context.Background()
	s.owner = testutil.CreateUser(s.T(), s.db)
	s.other = testutil.CreateUser(s.T(), s.db)
	s.categoryID = s.insertCategory(s.owner.ID, "Food")
	s.foreignCat = s.insertCategory(s.other.ID, "Other")
}

func (s *ExpenseServiceSuite) insertCategory(userID, name string) string {
	id := testutil.NewID()
	_, err := s.db.Exec(s.db.Rebind(`INSERT INTO categories (id, user_id, name, color_hex, created_at) VALUES (?, ?, ?, ?, ?)`),
		id, userID, name, entity.DefaultCategoryColor, time.Now().UTC())
	s.Require().NoError(err)
	return id
}

func (s *ExpenseServiceSuite) create(amount string, date string) entity.Expense {
	created, err := s.service.CreateExpense(s.ctx, expense.CreateExpenseRequest{
		UserID:      s.owner.ID,
		CategoryID:  s.categoryID,
		Amount:      decimal.RequireFromString(amount),
		Description: gofakeit.Sentence(5),
		Date:        date,
	}, nil)
	s.Require().NoError(err)
	return created
}

func (s *ExpenseServiceSuite) TestCreateAndGet() {
	created := s.create("50.00", "2026-02-01")

	found, err := s.service.GetExpenseByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("50").Equal(found.Amount))
	s.Equal(testutil.Date(2026, 2, 1), found.Date)
	s.Equal(s.categoryID, found.CategoryID)
	s.Nil(found.UpdatedAt)
	s.Nil(found.ReceiptKey)
}

func (s *ExpenseServiceSuite) TestCreateRoundsAmount() {
	created := s.create("10.005", "2026-01-15")
	s.Equal("10.01", created.Amount.StringFixed(2))

	found, err := s.service.GetExpenseByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.True(decimal.RequireFromString("10.01").Equal(found.Amount))
}

func (s *ExpenseServiceSuite) TestCreateValidation() {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(entity.DateLayout)

	cases := []struct {
		name string
		req  expense.CreateExpenseRequest
		err  error
	}{
		{"zero amount", expense.CreateExpenseRequest{CategoryID: s.categoryID, Amount: decimal.Zero, Date: "2026-01-01"}, expense.ErrInvalidAmount},
		{"negative amount", expense.CreateExpenseRequest{CategoryID: s.categoryID, Amount: decimal.NewFromInt(-3), Date: "2026-01-01"}, expense.ErrInvalidAmount},
		{"future date", expense.CreateExpenseRequest{CategoryID: s.categoryID, Amount: decimal.NewFromInt(3), Date: tomorrow}, expense.ErrFutureDate},
		{"bad date", expense.CreateExpenseRequest{CategoryID: s.categoryID, Amount: decimal.NewFromInt(3), Date: "yesterday"}, expense.ErrInvalidDate},
		{"unknown category", expense.CreateExpenseRequest{CategoryID: "missing", Amount: decimal.NewFromInt(3), Date: "2026-01-01"}, expense.ErrInvalidCategory},
		{"foreign category", expense.CreateExpenseRequest{CategoryID: s.foreignCat, Amount: decimal.NewFromInt(3), Date: "2026-01-01"}, expense.ErrInvalidCategory},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			tc.req.UserID = s.owner.ID
			_, err := s.service.CreateExpense(s.ctx, tc.req, nil)
			s.ErrorIs(err, tc.err)
		})
	}

	expenses, err := s.service.GetExpensesByUserID(s.ctx, s.owner.ID, nil)
	s.Require().NoError(err)
	s.Empty(expenses)
}

func (s *ExpenseServiceSuite) TestListFiltersByMonthAndOrdersByDateDesc() {
	s.create("10", "2026-01-31")
	s.create("20", "2026-02-01")
	s.create("30", "2026-02-15")
	s.create("40", "2026-03-01")

	all, err := s.service.GetExpensesByUserID(s.ctx, s.owner.ID, nil)
	s.Require().NoError(err)
	s.Len(all, 4)
	s.Equal(testutil.Date(2026, 3, 1), all[0].Date)

	feb, err := s.service.GetExpensesByUserID(s.ctx, s.owner.ID, &entity.MonthPeriod{Month: 2, Year: 2026})
	s.Require().NoError(err)
	s.Require().Len(feb, 2)
	s.Equal(testutil.Date(2026, 2, 15), feb[0].Date)
	s.Equal(testutil.Date(2026, 2, 1), feb[1].Date)

	total, err := s.service.TotalExpensesByUser(s.ctx, s.owner.ID, 2, 2026)
	s.Require().NoError(err)
	s.Equal("50.00", total.StringFixed(2))

	empty, err := s.service.TotalExpensesByUser(s.ctx, s.owner.ID, 6, 2020)
	s.Require().NoError(err)
	s.True(empty.IsZero())

	_, err = s.service.GetExpensesByUserID(s.ctx, s.owner.ID, &entity.MonthPeriod{Month: 13, Year: 2026})
	s.ErrorIs(err, expense.ErrInvalidPeriod)
}

func (s *ExpenseServiceSuite) TestPartialUpdate() {
	created := s.create("50", "2026-02-01")
	otherCategory := s.insertCategory(s.owner.ID, "Travel")

	amount := decimal.RequireFromString("75.5")
	updated, err := s.service.UpdateExpense(s.ctx, expense.UpdateExpenseRequest{
		ID:         created.ID,
		UserID:     s.owner.ID,
		Amount:     &amount,
		CategoryID: &otherCategory,
	}, nil)
	s.Require().NoError(err)
	s.Equal(created.Description, updated.Description)

	found, err := s.service.GetExpenseByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("75.50", found.Amount.StringFixed(2))
	s.Equal(otherCategory, found.CategoryID)
	s.Equal(created.Date, found.Date)
	s.Equal(created.Description, found.Description)
	s.NotNil(found.UpdatedAt)
}

func (s *ExpenseServiceSuite) TestUpdateRejectsInvalidValues() {
	created := s.create("50", "2026-02-01")

	zero := decimal.Zero
	_, err := s.service.UpdateExpense(s.ctx, expense.UpdateExpenseRequest{ID: created.ID, UserID: s.owner.ID, Amount: &zero}, nil)
	s.ErrorIs(err, expense.ErrInvalidAmount)

	_, err = s.service.UpdateExpense(s.ctx, expense.UpdateExpenseRequest{ID: created.ID, UserID: s.owner.ID, CategoryID: &s.foreignCat}, nil)
	s.ErrorIs(err, expense.ErrInvalidCategory)

	found, err := s.service.GetExpenseByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Equal("50.00", found.Amount.StringFixed(2))
	s.Nil(found.UpdatedAt)
}

func (s *ExpenseServiceSuite) TestOwnershipIsEnforced() {
	created := s.create("50", "2026-02-01")

	_, err := s.service.GetExpenseByID(s.ctx, created.ID, s.other.ID)
	s.ErrorIs(err, expense.ErrExpenseNotFound)

	amount := decimal.NewFromInt(1)
	_, err = s.service.UpdateExpense(s.ctx, expense.UpdateExpenseRequest{ID: created.ID, UserID: s.other.ID, Amount: &amount}, nil)
	s.ErrorIs(err, expense.ErrExpenseNotOwned)

	s.ErrorIs(s.service.DeleteExpense(s.ctx, created.ID, s.other.ID), expense.ErrExpenseNotOwned)
	s.ErrorIs(s.service.DeleteExpense(s.ctx, "missing", s.owner.ID), expense.ErrExpenseNotOwned)

	otherList, err := s.service.GetExpensesByUserID(s.ctx, s.other.ID, nil)
	s.Require().NoError(err)
	s.Empty(otherList)

	s.Require().NoError(s.service.DeleteExpense(s.ctx, created.ID, s.owner.ID))
	_, err = s.service.GetExpenseByID(s.ctx, created.ID, s.owner.ID)
	s.ErrorIs(err, expense.ErrExpenseNotFound)
}

func (s *ExpenseServiceSuite) TestReceiptLifecycle() {
	created, err := s.service.CreateExpense(s.ctx, expense.CreateExpenseRequest{
		UserID:     s.owner.ID,
		CategoryID: s.categoryID,
		Amount:     decimal.NewFromInt(12),
		Date:       "2026-02-01",
	}, receiptHeader("lunch.jpg", "image/jpeg", 1024))
	s.Require().NoError(err)
	s.Require().NotNil(created.ReceiptKey)
	firstKey := *created.ReceiptKey
	s.True(s.receipts.has(firstKey))

	found, err := s.service.GetExpenseByID(s.ctx, created.ID, s.owner.ID)
	s.Require().NoError(err)
	s.Contains(found.ReceiptLink, firstKey)

	updated, err := s.service.UpdateExpense(s.ctx, expense.UpdateExpenseRequest{ID: created.ID, UserID: s.owner.ID},
		receiptHeader("lunch.pdf", "application/pdf", 2048))
	s.Require().NoError(err)
	s.Require().NotNil(updated.ReceiptKey)
	s.False(s.receipts.has(firstKey))
	s.True(s.receipts.has(*updated.ReceiptKey))

	s.Require().NoError(s.service.DeleteExpense(s.ctx, created.ID, s.owner.ID))
	s.False(s.receipts.has(*updated.ReceiptKey))
}

func (s *ExpenseServiceSuite) TestReceiptValidation() {
	_, err := s.service.CreateExpense(s.ctx, expense.CreateExpenseRequest{
		UserID:     s.owner.ID,
		CategoryID: s.categoryID,
		Amount:     decimal.NewFromInt(12),
		Date:       "2026-02-01",
	}, receiptHeader("script.sh", "text/x-shellscript", 10))
	s.ErrorIs(err, expense.ErrInvalidReceipt)

	logger := testutil.NewLogger()
	withoutStorage := New(logger, expenseRepository.New(s.db, logger), nil, utils.New())
	_, err = withoutStorage.CreateExpense(s.ctx, expense.CreateExpenseRequest{
		UserID:     s.owner.ID,
		CategoryID: s.categoryID,
		Amount:     decimal.NewFromInt(12),
		Date:       "2026-02-01",
	}, receiptHeader("lunch.jpg", "image/jpeg", 10))
	s.ErrorIs(err, expense.ErrReceiptStorageUnavailable)
}
