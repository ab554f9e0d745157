package handler

import (
	"policygate/internal/extraction"
	"policygate/internal/intake"
	dErrors "policygate/pkg/domain-errors"
)

// ExtractRequest starts a document intake.
type ExtractRequest struct {
	Document DocumentPayload `json:"document"`
	Hints    HintsPayload    `json:"hints"`
}

// DocumentPayload carries the raw document. Exactly one of Base64 or Text
// must be set; the gate enforces size and mime rules.
type DocumentPayload struct {
	Base64   string `json:"base64,omitempty"`
	Text     string `json:"text,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// HintsPayload carries caller-selected context that survives failures.
type HintsPayload struct {
	InsurerID  string `json:"insurerId,omitempty"`
	PolicyType string `json:"policyType,omitempty"`
}

func (r *ExtractRequest) Validate() error {
	if r.Document.Base64 == "" && r.Document.Text == "" {
		return dErrors.New(dErrors.CodeBadRequest, "document payload is empty")
	}
	return nil
}

func (r *ExtractRequest) ExtractionDocument() extraction.Document {
	return extraction.Document{
		Base64:   r.Document.Base64,
		Text:     r.Document.Text,
		MimeType: r.Document.MimeType,
	}
}

func (r *ExtractRequest) ExtractionHints() extraction.Hints {
	return extraction.Hints{
		InsurerID:  r.Hints.InsurerID,
		PolicyType: r.Hints.PolicyType,
	}
}

// ValidateRequest resubmits an edited draft for authoritative re-validation.
type ValidateRequest struct {
	Draft intake.PolicyDraft `json:"draft"`
}

// AnalyzeRequest asks for the plain-language summary of a valid draft.
type AnalyzeRequest struct {
	Draft  intake.PolicyDraft `json:"draft"`
	Locale string             `json:"locale,omitempty"`
}

// CommitRequest reconciles a valid draft into the policy store.
type CommitRequest struct {
	Draft intake.PolicyDraft `json:"draft"`
}
