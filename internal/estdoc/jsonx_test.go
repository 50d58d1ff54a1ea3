package estdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"upper json fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFences(tc.in))
		})
	}
}

func TestExtractFirstJSONObject(t *testing.T) {
	got, err := ExtractFirstJSONObject(`noise before {"a": {"b": 2}} noise after {"c": 3}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 2}}`, got)
}

func TestExtractFirstJSONObjectIgnoresBracesInStrings(t *testing.T) {
	in := `{"text": "open { and close } inside", "n": 1}`
	got, err := ExtractFirstJSONObject(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestExtractFirstJSONObjectEscapedQuotes(t *testing.T) {
	in := `{"text": "he said \"brace {\" loudly", "n": 1}`
	got, err := ExtractFirstJSONObject(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestExtractFirstJSONObjectIncomplete(t *testing.T) {
	_, err := ExtractFirstJSONObject(`{"a": {"b": 2}`)
	assert.ErrorIs(t, err, ErrNoJSONObject)

	_, err = ExtractFirstJSONObject(`no braces here`)
	assert.ErrorIs(t, err, ErrNoJSONObject)
}
