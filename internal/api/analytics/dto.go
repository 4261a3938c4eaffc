package analytics

import (
	"SmartBudget/internal/entity"
	"SmartBudget/pkg/money"
	"time"

	"github.com/shopspring/decimal"
)

// DateWindowQuery is an optional inclusive window of calendar days.
type DateWindowQuery struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (q DateWindowQuery) Bounds() (start *time.Time, end *time.Time) {
	if d, err := entity.ParseDate(q.StartDate); err == nil {
		start = &d
	}
	if d, err := entity.ParseDate(q.EndDate); err == nil {
		end = &d
	}
	return start, end
}

type TrendsQuery struct {
	Months int `query:"months" json:"months" validate:"omitempty,min=1,max=120"`
}

type ExportQuery struct {
	Month int `query:"month" json:"month" validate:"required_with=Year,omitempty,min=1,max=12"`
	Year  int `query:"year" json:"year" validate:"required_with=Month,omitempty,min=1900,max=9999"`
}

func (q ExportQuery) Period() *entity.MonthPeriod {
	if q.Month == 0 && q.Year == 0 {
		return nil
	}
	return &entity.MonthPeriod{Month: q.Month, Year: q.Year}
}

type TotalResponse struct {
	Total string `json:"total"`
}

type NetBalanceResponse struct {
	NetBalance string `json:"net_balance"`
}

type MonthlyTrendResponse struct {
	Month    string `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

type BudgetReportItemResponse struct {
	BudgetID     string  `json:"budget_id"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	Limit        string  `json:"limit"`
	Spent        string  `json:"spent"`
	Status       string  `json:"status"`
	Remaining    *string `json:"remaining,omitempty"`
	Overage      *string `json:"overage,omitempty"`
}

type SummaryResponse struct {
	TotalIncome   string            `json:"total_income"`
	TotalExpenses string            `json:"total_expenses"`
	NetBalance    string            `json:"net_balance"`
	ByCategory    map[string]string `json:"by_category"`
}

func FormatAmounts(amounts map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(amounts))
	for k, v := range amounts {
		out[k] = money.Format(v)
	}
	return out
}

func NewMonthlyTrendResponses(trends []MonthlyTrend) []MonthlyTrendResponse {
	out := make([]MonthlyTrendResponse, 0, len(trends))
	for _, t := range trends {
		out = append(out, MonthlyTrendResponse{
			Month:    t.Month,
			Income:   money.Format(t.Income),
			Expenses: money.Format(t.Expenses),
			Balance:  money.Format(t.Balance),
		})
	}
	return out
}

func NewBudgetReportResponses(items []BudgetReportItem) []BudgetReportItemResponse {
	out := make([]BudgetReportItemResponse, 0, len(items))
	for _, item := range items {
		res := BudgetReportItemResponse{
			BudgetID:     item.BudgetID,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Month:        item.Month,
			Year:         item.Year,
			Limit:        money.Format(item.Limit),
			Spent:        money.Format(item.Spent),
			Status:       item.Status,
		}

		if item.Status == StatusExceeded {
			overage := money.Format(item.Overage)
			res.Overage = &overage
		} else {
			remaining := money.Format(item.Remaining)
			res.Remaining = &remaining
		}

		out = append(out, res)
	}
	return out
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:   money.Format(s.TotalIncome),
		TotalExpenses: money.Format(s.TotalExpenses),
		NetBalance:    money.Format(s.NetBalance),
		ByCategory:    FormatAmounts(s.ByCategory),
	}
}
