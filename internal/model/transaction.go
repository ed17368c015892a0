package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one canonical ledger row. Sign convention: negative amount =
// money leaving the account (expense/debit), positive = money entering
// (income/credit).
type Transaction struct {
	Date        time.Time // zero when the source date was unparseable
	Description string
	Category    string
	Amount      decimal.NullDecimal // invalid when the source amount was unparseable
	Type        string              // original transaction-type text, kept for audit
	Account     string
}

// HasDate reports whether the row carries a parseable calendar date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// HasAmount reports whether the row carries a parseable amount.
func (t Transaction) HasAmount() bool {
	return t.Amount.Valid
}

// Month returns the transaction's calendar month as "YYYY-MM", or "" when the
// date is missing.
func (t Transaction) Month() string {
	if !t.HasDate() {
		return ""
	}
	return t.Date.Format("2006-01")
}
