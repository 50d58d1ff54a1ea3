package estdoc

import (
	"strconv"
	"strings"
)

// confidenceBands maps the qualitative words models fall back to onto fixed
// numeric bands.
var confidenceBands = map[string]float64{
	"high":   0.9,
	"medium": 0.6,
	"low":    0.3,
}

// brittleKeys are fields most likely to break JSON or validation
// (raw excerpts, snippets, unschematized currency tags). Pruned everywhere,
// safe when absent.
var brittleKeys = []string{"snippet", "raw", "currency", "source_ref"}

// PruneBrittleFields deterministically removes known brittle keys from the
// decoded object tree.
func PruneBrittleFields(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range brittleKeys {
			delete(t, k)
		}
		for k, child := range t {
			t[k] = PruneBrittleFields(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = PruneBrittleFields(child)
		}
		return t
	default:
		return v
	}
}

// NormalizeTypes repairs the type inconsistencies the model tends to
// introduce: empty strings become null, qualitative confidence words become
// numeric bands, bare provenance strings are wrapped into {page, method},
// and description text is kept a string.
func NormalizeTypes(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			if s, ok := child.(string); ok && s == "" {
				child = nil
			}
			if k == "text" && child == nil {
				child = ""
			}
			if k == "confidence" {
				child = normalizeConfidence(child)
			}
			if k == "provenance" {
				if s, ok := child.(string); ok {
					child = map[string]any{"page": nil, "method": s}
				}
			}
			out[k] = NormalizeTypes(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = NormalizeTypes(child)
		}
		return t
	default:
		return v
	}
}

func normalizeConfidence(v any) any {
	switch c := v.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(c))
		if band, ok := confidenceBands[s]; ok {
			return band
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return clamp01(f)
		}
		return nil
	case float64:
		return clamp01(c)
	case int:
		return clamp01(float64(c))
	default:
		return nil
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// guardListFields replaces non-list values for list-typed top-level keys so
// validation isn't held hostage by a single wrong-typed field.
func guardListFields(m map[string]any) {
	for _, k := range []string{"line_items", "reconciliation", "assumptions_exclusions", "open_questions"} {
		if _, ok := m[k].([]any); !ok {
			m[k] = []any{}
		}
	}
	// nulled-out enum/version strings are dropped so defaults apply instead
	for _, k := range []string{"format_family", "schema_version"} {
		if v, ok := m[k]; ok && v == nil {
			delete(m, k)
		}
	}
}

// forceSource overwrites source.doc_role and source.file_name with the
// caller-supplied values. These are known-correct inputs, not model outputs.
func forceSource(m map[string]any, docRole, fileName string) {
	src, ok := m["source"].(map[string]any)
	if !ok {
		src = map[string]any{}
	}
	src["doc_role"] = docRole
	src["file_name"] = fileName
	m["source"] = src
}
