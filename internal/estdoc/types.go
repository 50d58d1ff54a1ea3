// Package estdoc is the deeper extraction path: it asks a model for a fully
// schema-typed estimate document and validates the result deterministically.
// Model output is untrusted input here: parse, repair once if needed, then
// validate; never deserialize directly into a trusted type.
package estdoc

// SchemaVersion identifies the document shape produced by this package.
const SchemaVersion = "1.0.0"

// Provenance is a page number and extraction method attached to a structured
// field for traceability back to the source document.
type Provenance struct {
	Page   *int    `json:"page"`
	Method *string `json:"method"`
}

// Money is a monetary field as stated in the document. Values are carried
// verbatim and never summed; the authoritative arithmetic lives in the
// ledger package.
type Money struct {
	Value      *float64    `json:"value"`
	Confidence *float64    `json:"confidence"`
	Provenance *Provenance `json:"provenance"`
}

type Quantity struct {
	Value      *float64    `json:"value"`
	Unit       *string     `json:"unit"`
	RawQty     *string     `json:"raw_qty"`
	RawUnit    *string     `json:"raw_unit"`
	Confidence *float64    `json:"confidence"`
	Provenance *Provenance `json:"provenance"`
}

type Description struct {
	Text      string  `json:"text"`
	TradeCode *string `json:"trade_code"`
}

// LineItem is one extracted scope line with quantity, pricing, per-cost-type
// components, and provenance.
type LineItem struct {
	ID       string  `json:"id"`
	Area     *string `json:"area"`
	Category *string `json:"category"`

	Description Description `json:"description"`
	Quantity    *Quantity   `json:"quantity"`
	UnitPrice   *Money      `json:"unit_price"`

	Components map[string]Money `json:"components"` // material/labor/equipment/...
	LineTotal  Money            `json:"line_total"`

	Flags      []string    `json:"flags"`
	Provenance *Provenance `json:"provenance"`
}

// Source identifies the document. DocRole and FileName are always forced to
// the caller-supplied values after parsing, regardless of model output.
type Source struct {
	DocRole  string `json:"doc_role"`
	FileName string `json:"file_name"`

	HasMoreLineItems   *bool `json:"has_more_line_items"`
	LineItemsExtracted *int  `json:"line_items_extracted"`
}

// DocumentTotals are totals as stated in the document, each optional.
type DocumentTotals struct {
	Subtotal       *Money `json:"subtotal"`
	Tax            *Money `json:"tax"`
	OverheadProfit *Money `json:"overhead_profit"`
	RCVTotal       *Money `json:"rcv_total"`
	ACVTotal       *Money `json:"acv_total"`
	NetClaim       *Money `json:"net_claim"`
}

// ComputedTotals is a placeholder the model must leave at defaults; it is
// never computed by the model.
type ComputedTotals struct {
	LineItemsSubtotal float64            `json:"line_items_subtotal"`
	ByBucket          map[string]float64 `json:"by_bucket"`
}

type ReconciliationCheck struct {
	CheckID       string   `json:"check_id"`
	Severity      string   `json:"severity"` // info | warning | fail
	DocumentValue *float64 `json:"document_value"`
	ComputedValue *float64 `json:"computed_value"`
	Delta         *float64 `json:"delta"`
	Notes         *string  `json:"notes"`
}

// EstimateDocument is the validated structured-parser output. Immutable
// after validation; created once per uploaded document per user action and
// not persisted beyond the request.
type EstimateDocument struct {
	SchemaVersion string `json:"schema_version"`
	Source        Source `json:"source"`

	FormatFamily string `json:"format_family"`

	LineItems []LineItem `json:"line_items"`

	DocumentTotals DocumentTotals `json:"document_totals"`
	ComputedTotals ComputedTotals `json:"computed_totals"`

	Reconciliation []ReconciliationCheck `json:"reconciliation"`

	AssumptionsExclusions []string `json:"assumptions_exclusions"`
	OpenQuestions         []string `json:"open_questions"`
}
