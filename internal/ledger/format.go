package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/claimlens/estimate-ledger/constants"
)

// FormatMoney renders an exact dollars-and-cents string with thousands
// separators, e.g. "$1,234.56" or "-$1,200.00". The formatter must be exact:
// downstream consumers quote these strings verbatim and nothing after this
// point can catch a formatting regression.
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatGroundTruth renders the aggregated totals into the immutable text
// block handed to narrative generation. One bucket per line, taxonomy order,
// byte-identical across runs for identical inputs.
func FormatGroundTruth(ordered []BucketTotal, role constants.DocRole, docName string) string {
	var b strings.Builder
	b.WriteString("=== GROUND TRUTH TOTALS (")
	b.WriteString(string(role))
	b.WriteString(": ")
	b.WriteString(docName)
	b.WriteString(") ===\n")
	b.WriteString("These totals were computed deterministically from the document text.\n")
	b.WriteString("Quote them EXACTLY as written. Never recompute, round, or re-derive them.\n\n")

	if len(ordered) == 0 {
		b.WriteString("No computed totals found for this document.\n")
	}
	for _, bt := range ordered {
		b.WriteString(string(bt.Bucket))
		b.WriteString(": ")
		b.WriteString(FormatMoney(bt.Total))
		b.WriteString("\n")
	}

	b.WriteString("=== END GROUND TRUTH TOTALS ===")
	return b.String()
}

// FormatSample renders a small representative sample of the atomic lines per
// bucket, explicitly marked as context only. Buckets iterate in the order of
// the presented ledger; at most maxBuckets buckets and linesPerBucket lines
// per bucket are included.
func FormatSample(l *Ledger, ordered []BucketTotal, maxBuckets, linesPerBucket int) string {
	var b strings.Builder
	b.WriteString("--- SAMPLE LINE ITEMS (context only, do NOT sum) ---\n")

	shown := 0
	for _, bt := range ordered {
		if shown >= maxBuckets {
			break
		}
		lines := l.Grouped[bt.Bucket]
		if len(lines) == 0 {
			continue
		}
		b.WriteString("[")
		b.WriteString(string(bt.Bucket))
		b.WriteString("]\n")
		for i, ml := range lines {
			if i >= linesPerBucket {
				break
			}
			b.WriteString("  ")
			b.WriteString(ml.Text)
			b.WriteString("\n")
		}
		shown++
	}

	b.WriteString("--- END SAMPLE ---")
	return b.String()
}
