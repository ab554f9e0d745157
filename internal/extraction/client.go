package extraction

import (
	"context"
	"encoding/json"
)

// Client is the boundary to the document-understanding service. Both calls
// are single-shot: a retry is a fresh invocation decided by the caller, never
// an internal loop.
type Client interface {
	// Extract runs the document through the extraction contract. Service
	// errors, timeouts, and unrecoverable response shapes all fail with
	// CodeExtractionFailed; the pipeline halts rather than substituting
	// defaults.
	Extract(ctx context.Context, doc Document, hints Hints) (*CandidateExtraction, error)

	// Analyze produces a plain-language summary of an already-verified
	// draft, serialized by the caller. A response with no usable sub-field
	// fails with CodeAnalysisFailed; the stage is advisory either way.
	Analyze(ctx context.Context, verifiedDraft json.RawMessage, locale string) (*AnalysisResult, error)
}
