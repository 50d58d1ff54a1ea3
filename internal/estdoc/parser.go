package estdoc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/llm"
)

// Config holds the parser's model knobs. Values are explicit per Parser so
// tests can run with mock models.
type Config struct {
	Model           string
	RepairModel     string // defaults to Model
	MaxOutputTokens int    // primary call cap, default 12000
	RepairMaxTokens int    // repair call cap, default 6000
	RepairMaxChars  int    // broken-content truncation, default 12000
	LineItemCap     int    // default 20
}

// Parser extracts one estimate document into a validated EstimateDocument.
// State machine: direct-parse -> success | failure -> repair-parse ->
// success | fatal-failure. No further retry tier, so worst case is two model
// calls per document.
type Parser struct {
	client llm.ChatClient
	cfg    Config
	log    *slog.Logger
}

func NewParser(client llm.ChatClient, cfg Config, logger *slog.Logger) *Parser {
	if cfg.RepairModel == "" {
		cfg.RepairModel = cfg.Model
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 12000
	}
	if cfg.RepairMaxTokens <= 0 {
		cfg.RepairMaxTokens = 6000
	}
	if cfg.RepairMaxChars <= 0 {
		cfg.RepairMaxChars = 12000
	}
	if cfg.LineItemCap <= 0 {
		cfg.LineItemCap = 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{client: client, cfg: cfg, log: logger}
}

// ParseError is the fatal failure of the structured parser: even the repair
// pass produced output that cannot be parsed or validated. It preserves
// positional diagnostic context for operators; the caller must not fabricate
// a partial document from it.
type ParseError struct {
	Stage   string // "repair-parse" or "schema-validate"
	Offset  int64  // byte offset of the syntax error, -1 when unknown
	Context string // surrounding lines of the offending output
	Err     error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("estdoc %s failed at offset %d: %v\n%s", e.Stage, e.Offset, e.Err, e.Context)
	}
	return fmt.Sprintf("estdoc %s failed: %v\n%s", e.Stage, e.Err, e.Context)
}

func (e *ParseError) Unwrap() error { return e.Err }

// contextAround returns the lines surrounding a byte offset, numbered, for
// error diagnostics.
func contextAround(s string, offset int64, radius int) string {
	if offset < 0 || offset > int64(len(s)) {
		offset = 0
	}
	lineNo := 1 + strings.Count(s[:offset], "\n")
	lines := strings.Split(s, "\n")

	start := lineNo - radius
	if start < 1 {
		start = 1
	}
	end := lineNo + radius
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i <= end; i++ {
		fmt.Fprintf(&b, "%04d: %s\n", i, lines[i-1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func decodeObject(text string) (map[string]any, error) {
	objText, err := ExtractFirstJSONObject(text)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(objText), &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Parse runs the full extraction for one document. Model-interaction errors
// propagate; they are never swallowed and replaced with guessed content.
func (p *Parser) Parse(ctx context.Context, docRole constants.DocRole, fileName, extractedText string) (*EstimateDocument, error) {
	rid := uuid.New().String()
	start := time.Now()

	p.log.Info("estdoc.parse.start",
		"req_id", rid, "model", p.cfg.Model, "doc_role", docRole,
		"file_name", fileName, "text_len", len(extractedText),
	)

	raw, err := p.client.Chat(ctx, llm.ChatRequest{
		Model:       p.cfg.Model,
		Temperature: 0,
		MaxTokens:   p.cfg.MaxOutputTokens,
		System:      parserSystemPrompt,
		User:        buildUserPrompt(docRole, fileName, extractedText, p.cfg.LineItemCap),
	})
	if err != nil {
		return nil, fmt.Errorf("estdoc primary call: %w", err)
	}

	rawText := StripCodeFences(raw)
	usedRepair := false

	data, err := decodeObject(rawText)
	if err != nil {
		p.log.Warn("estdoc.parse.direct_failed",
			"req_id", rid, "error", err, "head", head(rawText, 400),
		)
		usedRepair = true

		fixed, rErr := p.client.Chat(ctx, llm.ChatRequest{
			Model:       p.cfg.RepairModel,
			Temperature: 0,
			MaxTokens:   p.cfg.RepairMaxTokens,
			System:      repairSystemPrompt,
			User:        buildRepairPrompt(rawText, p.cfg.RepairMaxChars),
		})
		if rErr != nil {
			return nil, fmt.Errorf("estdoc repair call: %w", rErr)
		}

		fixedText := StripCodeFences(fixed)
		data, err = decodeObject(fixedText)
		if err != nil {
			offset := int64(-1)
			var synErr *json.SyntaxError
			if errors.As(err, &synErr) {
				offset = synErr.Offset
			}
			p.log.Error("estdoc.parse.repair_failed", "req_id", rid, "error", err, "offset", offset)
			return nil, &ParseError{
				Stage:   "repair-parse",
				Offset:  offset,
				Context: contextAround(fixedText, offset, 3),
				Err:     err,
			}
		}
	}

	// Deterministic cleanup so validation isn't held hostage by long/raw
	// fields, then force the caller-supplied identity.
	data = PruneBrittleFields(data).(map[string]any)
	data = NormalizeTypes(data).(map[string]any)
	guardListFields(data)
	forceSource(data, string(docRole), fileName)

	normalized, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal normalized document: %w", err)
	}
	if err := llm.ValidateJSONAgainstSchema(Schema(), normalized); err != nil {
		p.log.Error("estdoc.parse.schema_failed", "req_id", rid, "error", err)
		return nil, &ParseError{
			Stage:   "schema-validate",
			Offset:  -1,
			Context: head(string(normalized), 800),
			Err:     err,
		}
	}

	var doc EstimateDocument
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("decode estimate document: %w", err)
	}
	applyDefaults(&doc)

	p.log.Info("estdoc.parse.ok",
		"req_id", rid,
		"path", parsePath(usedRepair),
		"line_items", len(doc.LineItems),
		"format_family", doc.FormatFamily,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &doc, nil
}

func parsePath(usedRepair bool) string {
	if usedRepair {
		return "REPAIR"
	}
	return "DIRECT"
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// applyDefaults fills schema defaults the model may legitimately omit.
func applyDefaults(doc *EstimateDocument) {
	if doc.SchemaVersion == "" {
		doc.SchemaVersion = SchemaVersion
	}
	if doc.FormatFamily == "" {
		doc.FormatFamily = string(constants.FormatUnknown)
	}
	if doc.LineItems == nil {
		doc.LineItems = []LineItem{}
	}
	if doc.Reconciliation == nil {
		doc.Reconciliation = []ReconciliationCheck{}
	}
	if doc.AssumptionsExclusions == nil {
		doc.AssumptionsExclusions = []string{}
	}
	if doc.OpenQuestions == nil {
		doc.OpenQuestions = []string{}
	}
	if doc.ComputedTotals.ByBucket == nil {
		doc.ComputedTotals.ByBucket = map[string]float64{
			"materials": 0, "labor": 0, "equipment": 0, "subcontract": 0, "other": 0,
		}
	}
}
