package estdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneBrittleFields(t *testing.T) {
	in := map[string]any{
		"snippet": "raw pdf text",
		"keep":    "me",
		"nested": map[string]any{
			"raw":      "more raw",
			"currency": "USD",
			"list": []any{
				map[string]any{"source_ref": "p2", "ok": true},
			},
		},
	}

	out := PruneBrittleFields(in).(map[string]any)

	assert.NotContains(t, out, "snippet")
	assert.Equal(t, "me", out["keep"])
	nested := out["nested"].(map[string]any)
	assert.NotContains(t, nested, "raw")
	assert.NotContains(t, nested, "currency")
	item := nested["list"].([]any)[0].(map[string]any)
	assert.NotContains(t, item, "source_ref")
	assert.Equal(t, true, item["ok"])
}

func TestNormalizeTypesEmptyStringsAndText(t *testing.T) {
	in := map[string]any{
		"area": "",
		"description": map[string]any{
			"text": "",
		},
	}

	out := NormalizeTypes(in).(map[string]any)

	assert.Nil(t, out["area"])
	// description.text must stay a string
	assert.Equal(t, "", out["description"].(map[string]any)["text"])
}

func TestNormalizeTypesConfidence(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{"high", 0.9},
		{"Medium", 0.6},
		{"LOW", 0.3},
		{"0.75", 0.75},
		{"garbage", nil},
		{1.7, 1.0},
		{-0.2, 0.0},
		{0.42, 0.42},
		{true, nil},
	}
	for _, tc := range cases {
		out := NormalizeTypes(map[string]any{"confidence": tc.in}).(map[string]any)
		assert.Equal(t, tc.want, out["confidence"], "input %v", tc.in)
	}
}

func TestNormalizeTypesProvenanceWrapping(t *testing.T) {
	out := NormalizeTypes(map[string]any{"provenance": "table_extract"}).(map[string]any)

	prov, ok := out["provenance"].(map[string]any)
	require.True(t, ok)
	assert.Nil(t, prov["page"])
	assert.Equal(t, "table_extract", prov["method"])

	// structured provenance passes through untouched
	out = NormalizeTypes(map[string]any{
		"provenance": map[string]any{"page": float64(3), "method": "table"},
	}).(map[string]any)
	prov = out["provenance"].(map[string]any)
	assert.Equal(t, float64(3), prov["page"])
}

func TestGuardListFields(t *testing.T) {
	m := map[string]any{
		"line_items":     "not a list",
		"reconciliation": nil,
		"format_family":  nil,
	}

	guardListFields(m)

	assert.Equal(t, []any{}, m["line_items"])
	assert.Equal(t, []any{}, m["reconciliation"])
	assert.Equal(t, []any{}, m["assumptions_exclusions"])
	assert.Equal(t, []any{}, m["open_questions"])
	assert.NotContains(t, m, "format_family")
}

func TestForceSource(t *testing.T) {
	m := map[string]any{
		"source": map[string]any{"doc_role": "contractor", "file_name": "model-invented.pdf"},
	}

	forceSource(m, "insurance", "actual.pdf")

	src := m["source"].(map[string]any)
	assert.Equal(t, "insurance", src["doc_role"])
	assert.Equal(t, "actual.pdf", src["file_name"])

	// missing source object is created
	m = map[string]any{}
	forceSource(m, "contractor", "bid.pdf")
	src = m["source"].(map[string]any)
	assert.Equal(t, "contractor", src["doc_role"])
}
