package bucketing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/llm"
	"github.com/claimlens/estimate-ledger/internal/moneyline"
)

type stubChat struct {
	reply string
	err   error
	calls int
	last  llm.ChatRequest
}

func (s *stubChat) Chat(_ context.Context, req llm.ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func testLines() []moneyline.MoneyLine {
	amt := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []moneyline.MoneyLine{
		{ID: 0, RawLineNo: 3, Text: "27. Carpet Removal 150 SF 1,166.14", Amount: amt("1166.14")},
		{ID: 1, RawLineNo: 5, Text: "12. Paint walls 420 SF 373.80", Amount: amt("373.80")},
		{ID: 2, RawLineNo: 9, Text: "Sales Tax $88.20", Amount: amt("88.20")},
	}
}

func TestClassifyValidAssignments(t *testing.T) {
	stub := &stubChat{reply: `{"assignments":[
		{"id":0,"bucket":"flooring_carpet"},
		{"id":1,"bucket":"painting_interior"},
		{"id":2,"bucket":"taxes"}]}`}
	c := NewClassifier(stub, "test-model", nil)

	got, err := c.Classify(context.Background(), testLines())
	require.NoError(t, err)

	assert.Equal(t, constants.FlooringCarpet, got[0])
	assert.Equal(t, constants.PaintingInterior, got[1])
	assert.Equal(t, constants.Taxes, got[2])
	assert.Equal(t, 1, stub.calls)
	assert.Zero(t, stub.last.Temperature)
}

func TestClassifyUnknownBucketCoercedToOther(t *testing.T) {
	// unrecognized label, e.g. a made-up subdivision of the taxonomy
	stub := &stubChat{reply: `{"assignments":[
		{"id":0,"bucket":"flooring_vinyl"},
		{"id":1,"bucket":"painting_interior"},
		{"id":2,"bucket":"taxes"}]}`}
	c := NewClassifier(stub, "test-model", nil)

	got, err := c.Classify(context.Background(), testLines())
	require.NoError(t, err)

	assert.Equal(t, constants.Other, got[0])
}

func TestClassifyOmittedIDsDefaultToOther(t *testing.T) {
	stub := &stubChat{reply: `{"assignments":[{"id":1,"bucket":"painting_interior"}]}`}
	c := NewClassifier(stub, "test-model", nil)

	got, err := c.Classify(context.Background(), testLines())
	require.NoError(t, err)

	// completeness: every input id has exactly one bucket
	require.Len(t, got, 3)
	assert.Equal(t, constants.Other, got[0])
	assert.Equal(t, constants.PaintingInterior, got[1])
	assert.Equal(t, constants.Other, got[2])
}

func TestClassifyEmptyInputSkipsModelCall(t *testing.T) {
	stub := &stubChat{reply: `ignored`}
	c := NewClassifier(stub, "test-model", nil)

	got, err := c.Classify(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Zero(t, stub.calls)
}

func TestClassifyModelErrorPropagates(t *testing.T) {
	stub := &stubChat{err: errors.New("upstream 500")}
	c := NewClassifier(stub, "test-model", nil)

	_, err := c.Classify(context.Background(), testLines())
	assert.Error(t, err)
}

func TestClassifyMalformedJSONPropagates(t *testing.T) {
	stub := &stubChat{reply: `not json at all`}
	c := NewClassifier(stub, "test-model", nil)

	_, err := c.Classify(context.Background(), testLines())
	assert.Error(t, err)
}
