// Package redact strips personally-identifying fields and recurring page
// headers from extracted estimate text before any downstream processing.
// Redaction is best-effort and pattern-based: absence of a pattern means no
// replacement, never an error.
package redact

import (
	"regexp"
	"strings"
)

const (
	// Token substituted for redacted field values. It intentionally matches
	// none of the triggering patterns, which makes Redact idempotent.
	Token = "[REDACTED]"

	// HeaderToken replaces whole lines that repeat the claim/policy number
	// as a running page header.
	HeaderToken = "[HEADER REDACTED]"
)

var (
	// Labeled fields whose values are redacted in pass A. The label itself is
	// preserved so the document keeps its shape.
	reLabeledField = regexp.MustCompile(`(?i)^(\s*(?:` +
		`insured|customer|property owner|` +
		`claim\s*(?:number|no\.?|#)?|policy\s*(?:number|no\.?|#)?|estimate\s*(?:number|no\.?|#)?|` +
		`home|cellular|cell|phone|business|e-?mail|` +
		`adjuster|estimator|inspector|` +
		`date of loss|loss date|date inspected|inspection date` +
		`)\s*):\s*(.+)$`)

	// Claim/policy identifier captured once, before pass A destroys it, so
	// repeated page headers can be spotted anywhere else in the document.
	reClaimID = regexp.MustCompile(`(?i)^\s*(?:claim|policy)\s*(?:number|no\.?|#)?\s*:\s*([A-Za-z0-9][A-Za-z0-9-]{3,})\s*$`)

	// Pass B global sweeps, independent of field labels.
	reEmail       = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	rePhone       = regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]?\d{4}|\b\d{3}[-.]\d{3}[-.]\d{4}\b`)
	reInlineClaim = regexp.MustCompile(`(?i)\b(claim|policy|estimate)\s*(?:number|no\.?|#)\s*:?\s*[A-Za-z0-9][A-Za-z0-9-]*`)
)

// Redact removes PII from already-extracted page text. Two passes: labeled
// fields first (with running-header stripping), then a global sweep for
// email/phone/claim-number shaped tokens.
func Redact(text string) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")

	// Capture the claim/policy number before it is redacted away.
	claimID := ""
	for _, line := range lines {
		if m := reClaimID.FindStringSubmatch(line); m != nil {
			claimID = m[1]
			break
		}
	}

	for i, line := range lines {
		// Running header: a non-label line repeating the claim id verbatim.
		if claimID != "" && strings.Contains(line, claimID) && !reLabeledField.MatchString(line) {
			lines[i] = HeaderToken
			continue
		}
		lines[i] = reLabeledField.ReplaceAllString(line, "${1}: "+Token)
	}
	out := strings.Join(lines, "\n")

	// Pass B: global sweep.
	out = reEmail.ReplaceAllString(out, Token)
	out = rePhone.ReplaceAllString(out, Token)
	out = reInlineClaim.ReplaceAllString(out, "${1} # "+Token)

	return out
}
