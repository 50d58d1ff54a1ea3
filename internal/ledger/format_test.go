package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/claimlens/estimate-ledger/constants"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0.01", "$0.01"},
		{"5", "$5.00"},
		{"1166.14", "$1,166.14"},
		{"45230.10", "$45,230.10"},
		{"1234567.89", "$1,234,567.89"},
		{"-1200.00", "-$1,200.00"},
		{"999.999", "$1,000.00"}, // banker-free half-up rounding from StringFixed
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMoney(amt(tc.in)), "input %s", tc.in)
	}
}

func TestFormatGroundTruthBlock(t *testing.T) {
	l := SumByBucket(sampleLines(), sampleAssignment())
	got := FormatGroundTruth(l.OrderedTotals(), constants.RoleInsurance, "estimate.pdf")

	assert.True(t, strings.HasPrefix(got, "=== GROUND TRUTH TOTALS (insurance: estimate.pdf) ==="))
	assert.True(t, strings.HasSuffix(got, "=== END GROUND TRUTH TOTALS ==="))
	assert.Contains(t, got, "painting_interior: $373.80")
	assert.Contains(t, got, "flooring_carpet: $1,286.14")
	// zero-sum bucket never appears
	assert.NotContains(t, got, "taxes:")
}

func TestFormatGroundTruthDeterministic(t *testing.T) {
	a := FormatGroundTruth(SumByBucket(sampleLines(), sampleAssignment()).OrderedTotals(), constants.RoleContractor, "bid.pdf")
	b := FormatGroundTruth(SumByBucket(sampleLines(), sampleAssignment()).OrderedTotals(), constants.RoleContractor, "bid.pdf")
	assert.Equal(t, a, b, "identical inputs must produce byte-identical blocks")
}

func TestFormatGroundTruthEmpty(t *testing.T) {
	got := FormatGroundTruth(nil, constants.RoleInsurance, "empty.pdf")
	assert.Contains(t, got, "No computed totals found for this document.")
}

func TestFormatSampleCapsBucketsAndLines(t *testing.T) {
	l := SumByBucket(sampleLines(), sampleAssignment())
	ordered := l.OrderedTotals()

	got := FormatSample(l, ordered, 1, 1)

	assert.Contains(t, got, "context only, do NOT sum")
	assert.Contains(t, got, "[painting_interior]")
	assert.NotContains(t, got, "[flooring_carpet]")
	// one line per bucket
	assert.Equal(t, 1, strings.Count(got, "\n  "))
}

func TestFormatSampleAllBuckets(t *testing.T) {
	l := SumByBucket(sampleLines(), sampleAssignment())
	ordered := l.OrderedTotals()

	got := FormatSample(l, ordered, 10, 10)

	assert.Contains(t, got, "[painting_interior]")
	assert.Contains(t, got, "[flooring_carpet]")
	assert.Contains(t, got, "27. Carpet Removal 150 SF 1,166.14")
}
