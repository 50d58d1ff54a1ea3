package constants

import "strings"

// DocRole tags which side of a claim a document came from. It is supplied by
// the caller, never inferred from document content.
type DocRole string

const (
	RoleInsurance  DocRole = "insurance"
	RoleContractor DocRole = "contractor"
)

// ParseDocRole normalizes a caller-supplied role string.
func ParseDocRole(s string) (DocRole, bool) {
	switch DocRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleInsurance:
		return RoleInsurance, true
	case RoleContractor:
		return RoleContractor, true
	}
	return "", false
}

// FormatFamily is the closed set of document shapes the structured parser
// recognizes.
type FormatFamily string

const (
	FormatXactimateLike FormatFamily = "xactimate_like"
	FormatFreeform      FormatFamily = "freeform"
	FormatUnknown       FormatFamily = "unknown"
)

// FormatFamilies returns the allowed format_family values for schema enums.
func FormatFamilies() []string {
	return []string{string(FormatXactimateLike), string(FormatFreeform), string(FormatUnknown)}
}
