package estdoc

import (
	"errors"
	"strings"
)

// ErrNoJSONObject is returned when no complete top-level object exists in
// the model output.
var ErrNoJSONObject = errors.New("no complete top-level JSON object found in model output")

// StripCodeFences removes a wrapping ``` or ```json fence if present. Models
// add them despite instructions; stripping is always safe.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	_, s, _ = strings.Cut(s, "```")
	trimmed := strings.TrimSpace(s)
	if len(trimmed) >= 4 && strings.EqualFold(trimmed[:4], "json") {
		s = strings.TrimSpace(trimmed[4:])
	}
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// ExtractFirstJSONObject returns the first complete top-level {...} from
// text using brace-depth counting. Braces inside quoted strings are ignored,
// including escaped quotes and escape sequences.
func ExtractFirstJSONObject(text string) (string, error) {
	inStr := false
	esc := false
	depth := 0
	start := -1

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case ch == '\\':
				esc = true
			case ch == '"':
				inStr = false
			}
			continue
		}
		switch ch {
		case '"':
			inStr = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return text[start : i+1], nil
				}
			}
		}
	}

	return "", ErrNoJSONObject
}
