package summary

import (
	"strings"

	"github.com/claimlens/estimate-ledger/internal/ledger"
)

// FormatRoomTotals renders room totals into an immutable labeled block.
func FormatRoomTotals(rooms []Figure) string {
	var b strings.Builder
	b.WriteString("--- ROOM TOTALS (as stated in the document) ---\n")
	if len(rooms) == 0 {
		b.WriteString("No room totals found.\n")
	}
	for _, r := range rooms {
		b.WriteString(r.Label)
		b.WriteString(": ")
		b.WriteString(ledger.FormatMoney(r.Amount))
		b.WriteString("\n")
	}
	b.WriteString("--- END ROOM TOTALS ---")
	return b.String()
}

// FormatKeyNumbers renders headline figures into an immutable labeled block.
func FormatKeyNumbers(figs []Figure) string {
	var b strings.Builder
	b.WriteString("--- KEY NUMBERS (as stated in the document) ---\n")
	if len(figs) == 0 {
		b.WriteString("No key numbers found.\n")
	}
	for _, f := range figs {
		b.WriteString(f.Label)
		b.WriteString(": ")
		b.WriteString(ledger.FormatMoney(f.Amount))
		b.WriteString("\n")
	}
	b.WriteString("--- END KEY NUMBERS ---")
	return b.String()
}
