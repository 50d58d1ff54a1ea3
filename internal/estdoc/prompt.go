package estdoc

import (
	"fmt"
	"strings"

	"github.com/claimlens/estimate-ledger/constants"
)

const parserSystemPrompt = `You are extracting a home repair estimate into structured JSON.

You must output ONLY a single JSON object.
No markdown, no code fences, no explanations, no leading/trailing text.
The first character must be { and the last character must be }.

CRITICAL RULES:
- Do NOT compute totals or do arithmetic. Only extract values explicitly stated in the document.
- If a value is missing or unclear, set it to null and lower confidence.
- Prefer exact transcription over interpretation.
- For any important number (qty, unit price, line total, subtotal, tax, O&P, RCV/ACV), include the page number if available.

DOCUMENT CONTEXT:
- The user may provide an insurance estimate, a contractor estimate, or both.
- The document may be Xactimate-like (tabular) or less structured.
- Your job is to STRUCTURE, not explain.

OUTPUT:
Return a single JSON object matching the schema.`

const repairSystemPrompt = `You fix malformed JSON and return ONLY valid JSON.
Rules:
- Output must be a single JSON object.
- Use double quotes for all keys and string values.
- Use only JSON primitives: null, true, false, numbers, strings, arrays, objects.
- NEVER output NaN, Infinity, -Infinity, None.
- If a numeric value is unknown, use null.
- Escape internal quotes as \" and newlines as \n.
- If a string value is causing issues, shorten it aggressively or replace with "".
- Do not add new keys (do not invent fields).
- No trailing commas.
- Provenance may include only keys: page, method. Do not include snippet or source_ref.`

// buildUserPrompt renders the one-shot extraction request, including the
// line-item cap that bounds output size.
func buildUserPrompt(docRole constants.DocRole, fileName, extractedText string, lineItemCap int) string {
	var b strings.Builder
	b.WriteString("You are parsing ONE document.\n\n")
	b.WriteString("Return ONLY valid JSON. No markdown. No commentary.\n")
	b.WriteString("If a value is not present, use null and add a flag.\n\n")
	b.WriteString("TYPE RULES:\n")
	b.WriteString("- confidence fields must be numbers between 0 and 1 (e.g., 0.8). Never \"high\", \"medium\", or \"low\".\n")
	b.WriteString("- provenance must be either an object {page, method} or null. Never \"\".\n")
	b.WriteString("- Do not include raw text excerpts from the PDF.\n")
	b.WriteString("- Do not include snippet or source_ref fields anywhere.\n")
	b.WriteString("- If unknown, use null (not \"\", not \"unknown\").\n")
	b.WriteString("- Do not add any keys not listed (including inside nested objects).\n\n")
	fmt.Fprintf(&b, "doc_role: %s\n", docRole)
	fmt.Fprintf(&b, "file_name: %s\n\n", fileName)
	b.WriteString("LINE ITEMS LIMIT (CRITICAL):\n")
	fmt.Fprintf(&b, "- Extract at most %d line_items total.\n", lineItemCap)
	b.WriteString("- If the document contains more line items than you extracted, set:\n")
	b.WriteString("  source.has_more_line_items = true\n")
	b.WriteString("  source.line_items_extracted = <number extracted>\n")
	b.WriteString("- Then STOP adding line items and finish the JSON (close all braces).\n\n")
	b.WriteString("Fill this schema (no extra keys):\n")
	fmt.Fprintf(&b, "- schema_version: %q\n", SchemaVersion)
	b.WriteString("- source: object including at least:\n")
	fmt.Fprintf(&b, "  - doc_role: %q\n", string(docRole))
	fmt.Fprintf(&b, "  - file_name: %q\n", fileName)
	b.WriteString("  - has_more_line_items: true/false or null\n")
	b.WriteString("  - line_items_extracted: number or null\n")
	b.WriteString("- format_family: \"xactimate_like\" or \"freeform\" or \"unknown\"\n")
	b.WriteString("- line_items: list of objects with:\n")
	b.WriteString("  - id (string, create stable ids like \"LI-0001\")\n")
	b.WriteString("  - area (string or null)\n")
	b.WriteString("  - category (string or null)\n")
	b.WriteString("  - description: { text, trade_code }\n")
	b.WriteString("  - quantity: { value, unit, raw_qty, raw_unit, confidence, provenance }\n")
	b.WriteString("  - unit_price: { value, confidence, provenance }\n")
	b.WriteString("  - components: dict of Money objects (keys like \"material\",\"labor\",\"equipment\" if present)\n")
	b.WriteString("  - line_total: Money\n")
	b.WriteString("  - flags: list of strings\n")
	b.WriteString("  - provenance: { page, method }\n\n")
	b.WriteString("Note:\n")
	b.WriteString("- quantity.provenance and unit_price.provenance follow the same structure: { page, method } or null\n\n")
	b.WriteString("PRIORITY ORDER:\n")
	b.WriteString("1) source, schema_version, format_family\n")
	b.WriteString("2) line_items (up to the limit)\n")
	b.WriteString("3) document_totals\n")
	b.WriteString("4) all remaining fields may be empty or default if needed to keep JSON valid\n\n")
	b.WriteString("document_totals: extract stated totals if present (subtotal, tax, overhead_profit, rcv_total, acv_total, net_claim)\n")
	b.WriteString("computed_totals: leave as defaults/zeros; do NOT compute\n")
	b.WriteString("reconciliation: leave empty\n")
	b.WriteString("assumptions_exclusions: list of strings (if present)\n")
	b.WriteString("open_questions: list of strings (if uncertainties)\n\n")
	b.WriteString("EXTRACTED TEXT (may be messy):\n<<<\n")
	b.WriteString(extractedText)
	b.WriteString("\n>>>")
	return b.String()
}

// buildRepairPrompt packages the broken output for the stricter repair call.
// Content is truncated to bound the second call's size.
func buildRepairPrompt(broken string, maxChars int) string {
	if len(broken) > maxChars {
		broken = broken[:maxChars]
	}
	var b strings.Builder
	b.WriteString("Return ONLY a single valid JSON object.\n\n")
	b.WriteString("If the content is too long, shorten string values aggressively.\n")
	b.WriteString("Do not include any raw text excerpts.\n\n")
	b.WriteString("CONTENT TO FIX:\n<<<\n")
	b.WriteString(broken)
	b.WriteString("\n>>>")
	return b.String()
}
