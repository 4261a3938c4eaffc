package entity

import "time"

const DateLayout = "2006-01-02"

// DateRange is a half-open [From, To) window over transaction dates. A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// ParseDate parses YYYY-MM-DD as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// TruncateDay drops the clock part of t, keeping its calendar day in UTC.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveRange turns calendar days [start, end] into a half-open window ending the day after end.
func InclusiveRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		from := TruncateDay(*start)
		r.From = &from
	}
	if end != nil {
		to := TruncateDay(*end).AddDate(0, 0, 1)
		r.To = &to
	}
	return r
}

func MonthRange(year int, month time.Month) DateRange {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return DateRange{From: &from, To: &to}
}

func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthPeriod selects one calendar month.
type MonthPeriod struct {
	Month int
	Year  int
}

func (p MonthPeriod) Range() DateRange {
	return MonthRange(p.Year, time.Month(p.Month))
}
