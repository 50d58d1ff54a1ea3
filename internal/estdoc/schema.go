package estdoc

import "github.com/claimlens/estimate-ledger/constants"

// Schema returns the strict JSON-Schema (draft 2020-12 subset) for the
// structured parser output as a generic map. Unknown top-level keys are
// rejected; nested objects tolerate extras the way the prune/normalize pass
// leaves them.
func Schema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"source"},
		"properties": map[string]any{
			"schema_version": map[string]any{"type": "string"},
			"source": map[string]any{
				"type":     "object",
				"required": []string{"doc_role", "file_name"},
				"properties": map[string]any{
					"doc_role": map[string]any{
						"type": "string",
						"enum": []string{string(constants.RoleInsurance), string(constants.RoleContractor)},
					},
					"file_name":            map[string]any{"type": "string", "minLength": 1},
					"has_more_line_items":  map[string]any{"type": []string{"boolean", "null"}},
					"line_items_extracted": map[string]any{"type": []string{"integer", "null"}},
				},
			},
			"format_family": map[string]any{
				"type": "string",
				"enum": constants.FormatFamilies(),
			},
			"line_items": map[string]any{
				"type":  "array",
				"items": lineItemProp(),
			},
			"document_totals": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"subtotal":        moneyProp(),
					"tax":             moneyProp(),
					"overhead_profit": moneyProp(),
					"rcv_total":       moneyProp(),
					"acv_total":       moneyProp(),
					"net_claim":       moneyProp(),
				},
			},
			"computed_totals": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"line_items_subtotal": map[string]any{"type": "number"},
					"by_bucket": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "number"},
					},
				},
			},
			"reconciliation": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"check_id", "severity"},
					"properties": map[string]any{
						"check_id":       map[string]any{"type": "string"},
						"severity":       map[string]any{"type": "string", "enum": []string{"info", "warning", "fail"}},
						"document_value": map[string]any{"type": []string{"number", "null"}},
						"computed_value": map[string]any{"type": []string{"number", "null"}},
						"delta":          map[string]any{"type": []string{"number", "null"}},
						"notes":          map[string]any{"type": []string{"string", "null"}},
					},
				},
			},
			"assumptions_exclusions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"open_questions":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
	}
}

func lineItemProp() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"id", "description"},
		"properties": map[string]any{
			"id":       map[string]any{"type": "string", "minLength": 1},
			"area":     map[string]any{"type": []string{"string", "null"}},
			"category": map[string]any{"type": []string{"string", "null"}},
			"description": map[string]any{
				"type":     "object",
				"required": []string{"text"},
				"properties": map[string]any{
					"text":       map[string]any{"type": "string"},
					"trade_code": map[string]any{"type": []string{"string", "null"}},
				},
			},
			"quantity":   quantityProp(),
			"unit_price": moneyProp(),
			"components": map[string]any{
				"type":                 "object",
				"additionalProperties": moneyProp(),
			},
			"line_total": moneyProp(),
			"flags":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"provenance": provenanceProp(),
		},
	}
}

func moneyProp() map[string]any {
	return map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"value":      map[string]any{"type": []string{"number", "null"}},
			"confidence": confidenceProp(),
			"provenance": provenanceProp(),
		},
	}
}

func quantityProp() map[string]any {
	return map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"value":      map[string]any{"type": []string{"number", "null"}},
			"unit":       map[string]any{"type": []string{"string", "null"}},
			"raw_qty":    map[string]any{"type": []string{"string", "null"}},
			"raw_unit":   map[string]any{"type": []string{"string", "null"}},
			"confidence": confidenceProp(),
			"provenance": provenanceProp(),
		},
	}
}

func provenanceProp() map[string]any {
	return map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"page":   map[string]any{"type": []string{"integer", "null"}},
			"method": map[string]any{"type": []string{"string", "null"}},
		},
	}
}

func confidenceProp() map[string]any {
	return map[string]any{
		"type":    []string{"number", "null"},
		"minimum": 0.0,
		"maximum": 1.0,
	}
}
