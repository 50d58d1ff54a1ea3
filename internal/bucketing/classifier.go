// Package bucketing assigns every extracted money line exactly one bucket
// from the closed cost taxonomy. The model proposes labels; validation and
// completeness are enforced here, deterministically.
package bucketing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/common"
	"github.com/claimlens/estimate-ledger/internal/llm"
	"github.com/claimlens/estimate-ledger/internal/moneyline"
)

// Classifier sends money lines to a model constrained to the fixed taxonomy.
type Classifier struct {
	client llm.ChatClient
	model  string
	log    *slog.Logger
}

func NewClassifier(client llm.ChatClient, model string, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{client: client, model: model, log: logger}
}

type assignment struct {
	ID     int    `json:"id"`
	Bucket string `json:"bucket"`
}

type classifyResponse struct {
	Assignments []assignment `json:"assignments"`
}

// Classify returns a total mapping from money-line id to bucket.
//
// The call runs at zero temperature to minimize run-to-run drift, but the
// response is still treated as untrusted input: labels outside the taxonomy
// are coerced to Other, and any input id the model omits is defaulted to
// Other. Model-call and parse errors propagate; they are never replaced with
// guessed assignments.
func (c *Classifier) Classify(ctx context.Context, lines []moneyline.MoneyLine) (map[int]constants.Bucket, error) {
	mapping := make(map[int]constants.Bucket, len(lines))
	if len(lines) == 0 {
		return mapping, nil
	}

	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()
	prompt := buildPrompt(lines)

	c.log.Info("bucketing.classify.start",
		"req_id", rid, "model", c.model, "items", len(lines), "prompt_chars", len(prompt)+len(systemPrompt),
	)

	raw, err := c.client.Chat(ctx, llm.ChatRequest{
		Model:       c.model,
		Temperature: 0,
		System:      systemPrompt,
		User:        prompt,
		ForceJSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("bucketing chat: %w", err)
	}

	var resp classifyResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, common.WrapError(err, "decode bucketing response")
	}

	coerced := 0
	for _, a := range resp.Assignments {
		b, ok := constants.Canonicalize(a.Bucket)
		if !ok {
			coerced++
		}
		mapping[a.ID] = b
	}

	// Completeness is enforced by code, not by the model's compliance.
	defaulted := 0
	for _, ml := range lines {
		if _, ok := mapping[ml.ID]; !ok {
			mapping[ml.ID] = constants.Other
			defaulted++
		}
	}

	c.log.Info("bucketing.classify.ok",
		"req_id", rid,
		"assignments", len(resp.Assignments),
		"coerced_to_other", coerced,
		"defaulted_to_other", defaulted,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return mapping, nil
}
