// Package moneyline reduces raw estimate text to atomic, amount-bearing
// records. Extraction is fully deterministic; the amounts it produces are the
// only values later aggregated into ground-truth totals.
package moneyline

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Dollar amounts like "$1,234.56", optionally preceded by a minus-like
	// sign (hyphen, en dash, em dash) marking credits.
	reMoney = regexp.MustCompile(`([-–—])?\s*\$\s*((?:\d{1,3}(?:,\d{3})*|\d+)(?:\.\d{2})?)`)

	// Numbered line items like "27. Carpet ..."
	reLineItem = regexp.MustCompile(`^\s*\d+\.\s+`)

	// Plain money-like numbers without "$", e.g. "1,166.14"
	reNumMoney = regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*\.\d{2}\b`)

	reWhitespace = regexp.MustCompile(`\s+`)
)

// MoneyLine is one source text line reduced to a single extracted decimal
// amount plus its cleaned text. Immutable after extraction: later stages only
// read and aggregate.
type MoneyLine struct {
	ID        int             // sequence number in the filtered stream
	RawLineNo int             // line index in the original text stream
	Text      string          // cleaned line text
	Amount    decimal.Decimal // extracted line-item or $ amount, sign-preserving
}

func cleanLine(s string) string {
	s = strings.ReplaceAll(s, " ", " ") // nbsp
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

func parseMoneyToken(token, sign string) (decimal.Decimal, bool) {
	val, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	switch strings.TrimSpace(sign) {
	case "-", "–", "—":
		val = val.Neg()
	}
	return val, true
}

// Extract scans text line by line and emits the ordered list of money lines.
//
// Two line shapes are recognized, in priority order:
//
//  1. Numbered line items where the extended total appears as a plain number
//     ("27. Carpet ... 1,166.14"). The LAST numeric column is taken, since
//     tabular estimates place the extended/RCV amount rightmost. This is a
//     layout heuristic for Xactimate-like documents, not a general parser.
//  2. Lines with explicit $ amounts (summary / financial lines), where again
//     the last match wins.
//
// Lines whose amount's absolute value falls below minAbsAmount are dropped.
// A line with neither shape is never captured: false negatives are preferred
// to false positives that would corrupt the ledger.
func Extract(text string, minAbsAmount decimal.Decimal) []MoneyLine {
	var out []MoneyLine
	filteredID := 0

	for rawNo, line := range strings.Split(text, "\n") {
		cleaned := cleanLine(line)
		if cleaned == "" {
			continue
		}

		var amt decimal.Decimal
		found := false

		// Path 1: numbered line items (preferred)
		if reLineItem.MatchString(cleaned) {
			if nums := reNumMoney.FindAllString(cleaned, -1); len(nums) > 0 {
				amt, found = parseMoneyToken(nums[len(nums)-1], "")
			}
		}

		// Path 2: explicit $ amounts (fallback)
		if !found {
			if matches := reMoney.FindAllStringSubmatch(cleaned, -1); len(matches) > 0 {
				last := matches[len(matches)-1]
				amt, found = parseMoneyToken(last[2], last[1])
			}
		}

		if !found || amt.Abs().LessThan(minAbsAmount) {
			continue
		}

		out = append(out, MoneyLine{
			ID:        filteredID,
			RawLineNo: rawNo,
			Text:      cleaned,
			Amount:    amt,
		})
		filteredID++
	}

	return out
}
