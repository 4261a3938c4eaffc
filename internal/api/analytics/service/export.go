package analyticsService

import (
	"SmartBudget/internal/api/analytics"
	"SmartBudget/internal/entity"
	contextPkg "SmartBudget/pkg/context"
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const (
	SheetExpenses = "Expenses"
	SheetIncome   = "Income"
	SheetSummary  = "Summary"
)

// ExportTransactions renders the user's expenses and income as an XLSX workbook. A nil period
// exports everything.
func (s *analyticsService) ExportTransactions(ctx context.Context, userID string, period *entity.MonthPeriod) ([]byte, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var window entity.DateRange
	if period != nil {
		if period.Month < 1 || period.Month > 12 || period.Year == 0 {
			return nil, analytics.ErrInvalidPeriod
		}
		window = period.Range()
	}

	var (
		expenses   []entity.Expense
		incomes    []entity.Income
		categories []entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.loadExpenses(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		incomes, err = s.loadIncomes(gctx, userID, window)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.loadCategories(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeWorkbook(f, expenses, incomes, categories); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build export workbook")
		return nil, analytics.ErrExportFailed
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to write export workbook")
		return nil, analytics.ErrExportFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"expenses":   len(expenses),
		"incomes":    len(incomes),
	}).Info("Transactions exported")

	return buf.Bytes(), nil
}

func writeWorkbook(f *excelize.File, expenses []entity.Expense, incomes []entity.Income, categories []entity.Category) error {
	if err := f.SetSheetName("Sheet1", SheetExpenses); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetIncome); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	expenseRows := make([][]interface{}, 0, len(expenses))
	for _, e := range expenses {
		name, ok := names[e.CategoryID]
		if !ok {
			name = entity.UnknownCategoryName
		}
		expenseRows = append(expenseRows, []interface{}{
			e.Date.Format(entity.DateLayout), name, e.Description, e.Amount.InexactFloat64(),
		})
	}
	if err := writeTable(f, SheetExpenses, []interface{}{"Date", "Category", "Description", "Amount"}, expenseRows); err != nil {
		return err
	}

	incomeRows := make([][]interface{}, 0, len(incomes))
	for _, i := range incomes {
		incomeRows = append(incomeRows, []interface{}{
			i.Date.Format(entity.DateLayout), i.Source, i.Description, i.Amount.InexactFloat64(),
		})
	}
	if err := writeTable(f, SheetIncome, []interface{}{"Date", "Source", "Description", "Amount"}, incomeRows); err != nil {
		return err
	}

	summary := analytics.Summarize(expenses, incomes, categories)
	summaryRows := [][]interface{}{
		{"Total Income", summary.TotalIncome.InexactFloat64()},
		{"Total Expenses", summary.TotalExpenses.InexactFloat64()},
		{"Net Balance", summary.NetBalance.InexactFloat64()},
		{},
	}

	categoryNames := make([]string, 0, len(summary.ByCategory))
	for name := range summary.ByCategory {
		categoryNames = append(categoryNames, name)
	}
	sort.Strings(categoryNames)
	for _, name := range categoryNames {
		summaryRows = append(summaryRows, []interface{}{name, summary.ByCategory[name].InexactFloat64()})
	}

	if err := writeTable(f, SheetSummary, []interface{}{"Metric", "Amount"}, summaryRows); err != nil {
		return err
	}

	for sheet, widths := range map[string][]float64{
		SheetExpenses: {12, 20, 40, 14},
		SheetIncome:   {12, 20, 40, 14},
		SheetSummary:  {20, 14},
	} {
		for i, w := range widths {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sheet, col, col, w); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return nil
}

func writeTable(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
