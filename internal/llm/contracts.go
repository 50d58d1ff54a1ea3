package llm

import "context"

// ChatRequest is a single text-in, text-out model call. Model and temperature
// are explicit per call so the pipeline stays testable with mock values.
type ChatRequest struct {
	Model       string
	Temperature float32
	MaxTokens   int    // 0 means provider default
	System      string // system / instruction message
	User        string // user content
	ForceJSON   bool   // request a JSON-object response format if supported
}

// ChatClient is the interface the extraction pipeline depends on. Model
// output is always returned as an untyped string: callers parse and validate
// deterministically, never deserialize directly into a trusted type.
type ChatClient interface {
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
