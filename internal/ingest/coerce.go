package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autoadvisor-dev/autoadvisor/internal/model"
)

// dateLayouts tried in order when parsing source dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// Transaction-type markers for sign normalization. A debit-like type forces
// the amount negative; a credit-like type forces it positive. When a type
// matches both sets, the credit rule is applied last and wins.
var (
	debitMarkers  = []string{"debit", "dbt", "withdraw", "purchase"}
	creditMarkers = []string{"credit", "deposit", "refund", "paycheck", "salary"}
)

// ParseDate parses a source date into a calendar date (time of day and zone
// discarded). Unparseable values yield the zero time, not an error.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// ParseAmount strips currency formatting ($, commas, plus signs, surrounding
// whitespace) and parses a decimal. Unparseable values yield an invalid
// NullDecimal, excluding the row from all sums.
func ParseAmount(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "+", "")
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func matchesAny(typ string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(typ, m) {
			return true
		}
	}
	return false
}

// NormalizeSign applies the sign convention from the transaction-type text:
// debit-like types force -|amount|, credit-like types force +|amount|, and
// types matching neither keep the parsed sign. Credit wins on a dual match.
func NormalizeSign(amount decimal.NullDecimal, typ string) decimal.NullDecimal {
	if !amount.Valid {
		return amount
	}
	t := strings.ToLower(typ)
	if matchesAny(t, debitMarkers) {
		amount.Decimal = amount.Decimal.Abs().Neg()
	}
	if matchesAny(t, creditMarkers) {
		amount.Decimal = amount.Decimal.Abs()
	}
	return amount
}

// Coerce converts a normalized raw table into canonical transactions: dates
// and amounts are parsed (degrading to null on bad values) and the sign
// convention is applied. Categories are not assigned here.
func Coerce(t *RawTable) []model.Transaction {
	dateIdx := t.Index(ColDate)
	descIdx := t.Index(ColDescription)
	amountIdx := t.Index(ColAmount)
	typeIdx := t.Index(ColType)
	accountIdx := t.Index(ColAccount)

	txns := make([]model.Transaction, 0, len(t.Rows))
	for _, row := range t.Rows {
		typ := strings.TrimSpace(row[typeIdx])
		txns = append(txns, model.Transaction{
			Date:        ParseDate(row[dateIdx]),
			Description: strings.TrimSpace(row[descIdx]),
			Amount:      NormalizeSign(ParseAmount(row[amountIdx]), typ),
			Type:        typ,
			Account:     strings.TrimSpace(row[accountIdx]),
		})
	}
	return txns
}
