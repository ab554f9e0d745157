package extraction

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"policygate/internal/platform/config"
	dErrors "policygate/pkg/domain-errors"
)

// GeminiClient implements Client against the Gemini API.
type GeminiClient struct {
	client          *genai.Client
	model           string
	extractTimeout  time.Duration
	analysisTimeout time.Duration
	logger          *slog.Logger
}

// NewGemini builds the adapter from config. The API key is required; model
// and timeouts fall back to config defaults.
func NewGemini(ctx context.Context, cfg config.ExtractionConfig, logger *slog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, dErrors.New(dErrors.CodeInternal, "extraction API key is not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "create genai client", err)
	}
	return &GeminiClient{
		client:          client,
		model:           cfg.Model,
		extractTimeout:  cfg.Timeout,
		analysisTimeout: cfg.AnalysisTimeout,
		logger:          logger,
	}, nil
}

// Extract implements Client.
func (c *GeminiClient) Extract(ctx context.Context, doc Document, hints Hints) (*CandidateExtraction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.extractTimeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(extractionPrompt(hints))}
	switch {
	case doc.Base64 != "":
		raw, err := base64.StdEncoding.DecodeString(doc.Base64)
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeBadRequest, "payload is not valid base64", err)
		}
		parts = append(parts, genai.NewPartFromBytes(raw, doc.MimeType))
	default:
		parts = append(parts, genai.NewPartFromText(doc.Text))
	}

	text, err := c.generate(ctx, parts)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeExtractionFailed, "document understanding call failed", err)
	}

	var candidate CandidateExtraction
	if err := decodeJSON(text, &candidate); err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "unparseable extraction response",
				"response_len", len(text),
				"error", err.Error(),
			)
		}
		return nil, dErrors.Wrap(dErrors.CodeExtractionFailed, "extraction response does not match contract", err)
	}
	return &candidate, nil
}

// Analyze implements Client.
func (c *GeminiClient) Analyze(ctx context.Context, verifiedDraft json.RawMessage, locale string) (*AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.analysisTimeout)
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(analysisPrompt(string(verifiedDraft), locale))}
	text, err := c.generate(ctx, parts)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeAnalysisFailed, "analysis call failed", err)
	}

	var result AnalysisResult
	if err := decodeJSON(text, &result); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeAnalysisFailed, "analysis response does not match contract", err)
	}
	if result.Empty() {
		return nil, dErrors.New(dErrors.CodeAnalysisFailed, "analysis response has no usable fields")
	}
	return &result, nil
}

func (c *GeminiClient) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
