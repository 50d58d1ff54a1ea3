// Package pipeline coordinates the per-document extraction stages: redact,
// money-line extraction, bucket classification, aggregation, and formatting.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/bucketing"
	"github.com/claimlens/estimate-ledger/internal/common"
	"github.com/claimlens/estimate-ledger/internal/ledger"
	"github.com/claimlens/estimate-ledger/internal/moneyline"
	"github.com/claimlens/estimate-ledger/internal/redact"
	"github.com/claimlens/estimate-ledger/internal/summary"
)

// DocumentInput is one estimate document to process: its claimed role, its
// display name, and its already-extracted page text.
type DocumentInput struct {
	Role     constants.DocRole
	Filename string
	Text     string
}

// DocumentResult carries everything the ground-truth path computes for one
// document. The formatted blocks are the only artifacts handed to narrative
// generation; downstream must treat them as immutable fact.
type DocumentResult struct {
	Role     constants.DocRole
	Filename string

	RedactedText string
	MoneyLines   []moneyline.MoneyLine
	BucketMap    map[int]constants.Bucket
	Ledger       *ledger.Ledger
	Ordered      []ledger.BucketTotal

	GroundTruthBlock string
	SampleBlock      string
	RoomTotalsBlock  string
	KeyNumbersBlock  string
}

// Processor runs the deterministic ground-truth pipeline for estimate
// documents. Classification is the only model-dependent stage; everything
// up- and downstream of it is pure computation.
type Processor struct {
	classifier   *bucketing.Classifier
	minAbsAmount decimal.Decimal
	log          *slog.Logger

	sampleMaxBuckets     int
	sampleLinesPerBucket int
}

func NewProcessor(classifier *bucketing.Classifier, minAbsAmount decimal.Decimal, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		classifier:           classifier,
		minAbsAmount:         minAbsAmount,
		log:                  logger,
		sampleMaxBuckets:     8,
		sampleLinesPerBucket: 3,
	}
}

// ProcessDocument runs one document through redaction, money-line extraction,
// bucket classification, aggregation, and formatting. A classification
// failure aborts the document; partial ledgers are never returned.
func (p *Processor) ProcessDocument(ctx context.Context, in DocumentInput) (*DocumentResult, error) {
	rid := uuid.New().String()
	start := time.Now()
	p.log.Info("pipeline.document.start",
		"req_id", rid, "doc_role", in.Role, "file_name", in.Filename, "text_len", len(in.Text),
	)

	redacted := redact.Redact(in.Text)
	lines := moneyline.Extract(redacted, p.minAbsAmount)

	bucketMap, err := p.classifier.Classify(common.WithRequestID(ctx, rid), lines)
	if err != nil {
		p.log.Error("pipeline.document.classify_failed",
			"req_id", rid, "file_name", in.Filename, "error", err,
		)
		return nil, fmt.Errorf("classify %s: %w", in.Filename, err)
	}

	led := ledger.SumByBucket(lines, bucketMap)
	ordered := led.OrderedTotals()

	res := &DocumentResult{
		Role:         in.Role,
		Filename:     in.Filename,
		RedactedText: redacted,
		MoneyLines:   lines,
		BucketMap:    bucketMap,
		Ledger:       led,
		Ordered:      ordered,

		GroundTruthBlock: ledger.FormatGroundTruth(ordered, in.Role, in.Filename),
		SampleBlock:      ledger.FormatSample(led, ordered, p.sampleMaxBuckets, p.sampleLinesPerBucket),
		RoomTotalsBlock:  summary.FormatRoomTotals(summary.RoomTotals(redacted)),
		KeyNumbersBlock:  summary.FormatKeyNumbers(summary.KeyNumbers(redacted)),
	}

	p.log.Info("pipeline.document.ok",
		"req_id", rid,
		"file_name", in.Filename,
		"money_lines", len(lines),
		"buckets", len(ordered),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// ProcessBatch processes documents strictly in input order. The first
// failure aborts the batch so a caller never sees a ledger set that mixes
// fresh and missing documents.
func (p *Processor) ProcessBatch(ctx context.Context, ins []DocumentInput) ([]*DocumentResult, error) {
	results := make([]*DocumentResult, 0, len(ins))
	for _, in := range ins {
		res, err := p.ProcessDocument(ctx, in)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
