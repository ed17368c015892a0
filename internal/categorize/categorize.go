package categorize

import "strings"

// Other is the fallback category when no rule matches.
const Other = "Other"

// Rule pairs a lower-case keyword with the category it implies.
type Rule struct {
	Keyword  string
	Category string
}

// Lexicon is an ordered rule list. Rules are evaluated in order and the first
// keyword found as a substring wins, so insertion order is the tie-break when
// a description contains several keywords.
type Lexicon []Rule

// DefaultLexicon returns the built-in keyword rules.
func DefaultLexicon() Lexicon {
	return Lexicon{
		{"starbucks", "Dining"},
		{"uber", "Transport"},
		{"walmart", "Groceries"},
		{"amazon", "Shopping"},
		{"rent", "Housing"},
		{"electric", "Utilities"},
		{"paycheck", "Income"},
		{"salary", "Income"},
		{"prime", "Subscriptions"},
		{"netflix", "Subscriptions"},
	}
}

// Categorize maps a description to a category. Total and deterministic; a
// description matching no rule yields Other.
func (l Lexicon) Categorize(description string) string {
	d := strings.ToLower(description)
	for _, r := range l {
		if strings.Contains(d, r.Keyword) {
			return r.Category
		}
	}
	return Other
}
