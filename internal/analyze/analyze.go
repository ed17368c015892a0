// Package analyze computes monthly financial metrics from the canonical
// ledger. All functions are pure: the ledger is never mutated and the returned
// metrics are a value snapshot.
package analyze

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autoadvisor-dev/autoadvisor/internal/model"
)

// ErrNoData means the ledger holds no parseable dates, so no default period
// can be inferred.
var ErrNoData = errors.New("no valid dates in transactions")

// PeriodLayout is the calendar-month format used throughout ("YYYY-MM").
const PeriodLayout = "2006-01"

// CategoryTotal is absolute spend for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Spike is one of the largest single expense transactions in a period.
type Spike struct {
	Date        *string         `json:"date"` // "YYYY-MM-DD", null when missing
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // negative
	Category    string          `json:"category"`
}

// Metrics is the read-only summary of one calendar month.
type Metrics struct {
	Period            string          `json:"period"`
	IncomeTotal       decimal.Decimal `json:"income_total"`
	ExpenseTotal      decimal.Decimal `json:"expense_total"` // negative
	Net               decimal.Decimal `json:"net"`
	SavingsRatePct    decimal.Decimal `json:"savings_rate_pct"`
	TopCategories     []CategoryTotal `json:"top_categories"`
	Spikes            []Spike         `json:"spikes"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
	TxCount           int             `json:"tx_count"`
}

var hundred = decimal.NewFromInt(100)

// Months returns the sorted distinct "YYYY-MM" values carrying valid dates.
func Months(ledger []model.Transaction) []string {
	seen := make(map[string]bool)
	var months []string
	for _, t := range ledger {
		if m := t.Month(); m != "" && !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Strings(months)
	return months
}

// latestMonth returns the first day of the month of the maximum valid date.
func latestMonth(ledger []model.Transaction) (time.Time, error) {
	var latest time.Time
	for _, t := range ledger {
		if t.HasDate() && t.Date.After(latest) {
			latest = t.Date
		}
	}
	if latest.IsZero() {
		return time.Time{}, ErrNoData
	}
	return time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// Analyze computes the metrics for one calendar month of the ledger. An empty
// month string selects the month of the latest valid date (ErrNoData when
// none exists). The month slice is half-open: [start, start+1 month).
func Analyze(ledger []model.Transaction, month string) (Metrics, error) {
	var start time.Time
	if month == "" {
		var err error
		start, err = latestMonth(ledger)
		if err != nil {
			return Metrics{}, err
		}
	} else {
		var err error
		start, err = time.Parse(PeriodLayout, month)
		if err != nil {
			return Metrics{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
		}
	}
	end := start.AddDate(0, 1, 0)

	var slice []model.Transaction
	for _, t := range ledger {
		if t.HasDate() && !t.Date.Before(start) && t.Date.Before(end) {
			slice = append(slice, t)
		}
	}

	m := Metrics{
		Period:            start.Format(PeriodLayout),
		TopCategories:     []CategoryTotal{},
		Spikes:            []Spike{},
		CategoryBreakdown: []CategoryTotal{},
		TxCount:           len(slice),
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range slice {
		if !t.Amount.Valid {
			continue
		}
		switch {
		case t.Amount.Decimal.IsPositive():
			income = income.Add(t.Amount.Decimal)
		case t.Amount.Decimal.IsNegative():
			expense = expense.Add(t.Amount.Decimal)
		}
	}
	m.IncomeTotal = income.Round(2)
	m.ExpenseTotal = expense.Round(2)
	m.Net = m.IncomeTotal.Add(m.ExpenseTotal).Round(2)
	if m.IncomeTotal.IsPositive() {
		m.SavingsRatePct = m.Net.Div(m.IncomeTotal).Mul(hundred).Round(2)
	} else {
		m.SavingsRatePct = decimal.Zero
	}

	m.CategoryBreakdown = expenseByCategory(slice)
	if len(m.CategoryBreakdown) > 5 {
		m.TopCategories = m.CategoryBreakdown[:5]
	} else {
		m.TopCategories = m.CategoryBreakdown
	}

	m.Spikes = expenseSpikes(slice)

	return m, nil
}

// expenseByCategory groups expense rows by category and sums absolute
// amounts, sorted by amount descending. Ties keep the order in which the
// categories first appear in the slice (the grouping order).
func expenseByCategory(slice []model.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range slice {
		if !t.Amount.Valid || !t.Amount.Decimal.IsNegative() {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount.Decimal.Abs())
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		breakdown = append(breakdown, CategoryTotal{Category: c, Amount: totals[c].Round(2)})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	return breakdown
}

// expenseSpikes returns the 5 most negative single transactions, most
// negative first.
func expenseSpikes(slice []model.Transaction) []Spike {
	var expenses []model.Transaction
	for _, t := range slice {
		if t.Amount.Valid && t.Amount.Decimal.IsNegative() {
			expenses = append(expenses, t)
		}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.Decimal.LessThan(expenses[j].Amount.Decimal)
	})
	if len(expenses) > 5 {
		expenses = expenses[:5]
	}

	spikes := make([]Spike, 0, len(expenses))
	for _, t := range expenses {
		s := Spike{
			Description: t.Description,
			Amount:      t.Amount.Decimal.Round(2),
			Category:    t.Category,
		}
		if t.HasDate() {
			d := t.Date.Format("2006-01-02")
			s.Date = &d
		}
		spikes = append(spikes, s)
	}
	return spikes
}
