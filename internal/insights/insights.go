// Package insights derives short natural-language observations from monthly
// metrics via fixed threshold rules.
package insights

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/autoadvisor-dev/autoadvisor/internal/analyze"
)

var (
	twenty    = decimal.NewFromInt(20)
	ten       = decimal.NewFromInt(10)
	halfRatio = decimal.NewFromFloat(0.5)
	highRatio = decimal.NewFromFloat(0.8)
)

// Generate evaluates the insight rules against one month's metrics. The rules
// run in a fixed order and never fail; absent inputs simply suppress the
// corresponding message.
func Generate(m analyze.Metrics) []string {
	var msgs []string

	income := m.IncomeTotal
	expense := m.ExpenseTotal.Abs()
	rate := m.SavingsRatePct

	// Savings health (mutually exclusive branches).
	switch {
	case !income.IsPositive():
		msgs = append(msgs, fmt.Sprintf("For %s, no income detected. Check data or add sources.", m.Period))
	case rate.GreaterThanOrEqual(twenty):
		msgs = append(msgs, fmt.Sprintf("Great month: savings rate is %s%%, above the 20%% rule of thumb.", rate.StringFixed(1)))
	case rate.GreaterThanOrEqual(ten):
		msgs = append(msgs, fmt.Sprintf("Savings rate is %s%%. Solid, but there is room to push past 20%%.", rate.StringFixed(1)))
	default:
		msgs = append(msgs, fmt.Sprintf("Savings rate is %s%%. Consider trimming flexible spend to boost savings.", rate.StringFixed(1)))
	}

	// Expense composition.
	if len(m.TopCategories) > 0 {
		top := m.TopCategories[0]
		share := decimal.Zero
		if expense.IsPositive() {
			share = top.Amount.Div(expense).Mul(decimal.NewFromInt(100))
		}
		msgs = append(msgs, fmt.Sprintf("Top spend category: %s ($%s), ~%s%% of total expenses.",
			top.Category, top.Amount.StringFixed(2), share.StringFixed(1)))
	}

	// Largest single expense.
	if len(m.Spikes) > 0 {
		s := m.Spikes[0]
		date := "unknown date"
		if s.Date != nil {
			date = *s.Date
		}
		msgs = append(msgs, fmt.Sprintf("Largest transaction: %s %s on %s (%s).",
			s.Description, s.Amount.StringFixed(2), date, s.Category))
	}

	// Pattern nudges; both may fire, or neither.
	if expense.IsPositive() && expense.LessThan(income.Mul(halfRatio)) {
		msgs = append(msgs, "Your expenses are under 50% of income. Strong cost control.")
	}
	if expense.GreaterThan(income.Mul(highRatio)) {
		msgs = append(msgs, "Expenses exceed 80% of income. Consider a budget review.")
	}

	// Low-data caveat.
	if m.TxCount < 10 {
		msgs = append(msgs, "Limited transactions this month. Insights may be noisy; add more data for better signal.")
	}

	return msgs
}
