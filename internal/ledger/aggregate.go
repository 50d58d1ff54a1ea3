// Package ledger turns classified money lines into the authoritative
// per-bucket totals. This is the only place in the system where a dollar
// figure treated as ground truth is produced; nothing downstream may
// recompute or adjust it.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/moneyline"
)

// Ledger holds per-bucket sums plus the contributing lines per bucket.
type Ledger struct {
	Totals  map[constants.Bucket]decimal.Decimal
	Grouped map[constants.Bucket][]moneyline.MoneyLine
}

// BucketTotal is one row of the presented ledger.
type BucketTotal struct {
	Bucket constants.Bucket
	Total  decimal.Decimal
}

// SumByBucket sums exact decimal amounts grouped by bucket. A line whose id
// is missing from the assignment lands in Other, so no amount is ever
// dropped at this stage.
func SumByBucket(lines []moneyline.MoneyLine, assignment map[int]constants.Bucket) *Ledger {
	l := &Ledger{
		Totals:  make(map[constants.Bucket]decimal.Decimal),
		Grouped: make(map[constants.Bucket][]moneyline.MoneyLine),
	}
	for _, ml := range lines {
		b, ok := assignment[ml.ID]
		if !ok {
			b = constants.Other
		}
		l.Grouped[b] = append(l.Grouped[b], ml)
		l.Totals[b] = l.Totals[b].Add(ml.Amount)
	}
	return l
}

// OrderedTotals returns the presented ledger: taxonomy-declared order,
// buckets whose sum is exactly zero excluded. Iterating the enum, not the
// map, is what makes presentation deterministic across runs.
func (l *Ledger) OrderedTotals() []BucketTotal {
	var out []BucketTotal
	for _, b := range constants.AllBuckets() {
		total, ok := l.Totals[b]
		if !ok || total.IsZero() {
			continue
		}
		out = append(out, BucketTotal{Bucket: b, Total: total})
	}
	return out
}
