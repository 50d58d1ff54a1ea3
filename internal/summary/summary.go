// Package summary pulls labeled summary figures out of estimate text with
// plain pattern matching: per-room "Totals:" lines and headline numbers like
// RCV or the deductible. No model is involved; what isn't labeled isn't
// reported.
package summary

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reTotalsLine = regexp.MustCompile(`(?i)^totals:\s*(.+)$`)

	// Grouping rows that look like room totals but aggregate floors, levels,
	// or sketch areas. Reporting those alongside rooms would double-count.
	reGroupingLabel = regexp.MustCompile(`(?i)(\b(floor|level|stor(?:y|ey)|basement|roof plan)\b|sketch)`)

	reAmount = regexp.MustCompile(`-?\$?\s*\d{1,3}(?:,\d{3})*\.\d{2}\b`)

	// Headline figures in the order they are reported.
	keyNumberPatterns = []struct {
		label string
		re    *regexp.Regexp
	}{
		{"Replacement Cost Value", regexp.MustCompile(`(?i)^\s*(?:total\s+)?replacement cost value|^\s*(?:total\s+)?rcv\b`)},
		{"Actual Cash Value", regexp.MustCompile(`(?i)^\s*(?:total\s+)?actual cash value|^\s*(?:total\s+)?acv\b`)},
		{"Deductible", regexp.MustCompile(`(?i)^\s*(?:less\s+)?deductible\b`)},
		{"Overhead & Profit", regexp.MustCompile(`(?i)^\s*overhead\s*(?:&|and)\s*profit|^\s*o\s*&\s*p\b`)},
		{"Sales Tax", regexp.MustCompile(`(?i)^\s*(?:total\s+)?(?:sales\s+)?(?:material\s+)?sales tax|^\s*sales tax\b`)},
		{"Net Claim", regexp.MustCompile(`(?i)^\s*net claim\b`)},
	}
)

// Figure is one labeled amount lifted verbatim from the document.
type Figure struct {
	Label  string
	Amount decimal.Decimal
}

func lastAmount(line string) (decimal.Decimal, bool) {
	matches := reAmount.FindAllString(line, -1)
	if len(matches) == 0 {
		return decimal.Decimal{}, false
	}
	tok := matches[len(matches)-1]
	neg := strings.HasPrefix(tok, "-")
	tok = strings.NewReplacer("-", "", "$", "", ",", "", " ", "").Replace(tok)
	val, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if neg {
		val = val.Neg()
	}
	return val, true
}

// RoomTotals extracts explicit "Totals: <room>" lines, excluding known
// floor/level/sketch grouping rows. The last amount on the line is taken as
// the room total.
func RoomTotals(text string) []Figure {
	var out []Figure
	for _, line := range strings.Split(text, "\n") {
		m := reTotalsLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		rest := strings.TrimSpace(m[1])
		amt, ok := lastAmount(rest)
		if !ok {
			continue
		}
		label := strings.TrimSpace(reAmount.ReplaceAllString(rest, ""))
		if label == "" || reGroupingLabel.MatchString(label) {
			continue
		}
		out = append(out, Figure{Label: label, Amount: amt})
	}
	return out
}

// KeyNumbers extracts labeled headline figures (RCV, ACV, deductible, O&P,
// sales tax, net claim). For each label the first matching line wins; absence
// of a label means the figure is simply not reported, never estimated.
func KeyNumbers(text string) []Figure {
	lines := strings.Split(text, "\n")
	var out []Figure
	for _, p := range keyNumberPatterns {
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if !p.re.MatchString(trimmed) {
				continue
			}
			amt, ok := lastAmount(trimmed)
			if !ok {
				continue
			}
			out = append(out, Figure{Label: p.label, Amount: amt})
			break
		}
	}
	return out
}
