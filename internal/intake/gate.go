package intake

import (
	"fmt"

	"policygate/internal/extraction"
	dErrors "policygate/pkg/domain-errors"
)

// Size limits are inclusive: a payload of exactly the limit passes.
const (
	MaxBase64Bytes = 10 << 20
	MaxTextBytes   = 5 << 20
)

var allowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
	"image/webp":      {},
	"text/plain":      {},
}

// CheckPayload is the ingestion gate: it inspects the payload and either
// rejects it or passes it through unchanged. Purely synchronous, no side
// effects, runs before any network call.
func CheckPayload(doc extraction.Document) error {
	switch {
	case doc.Base64 == "" && doc.Text == "":
		return dErrors.New(dErrors.CodeBadRequest, "document payload is empty")
	case doc.Base64 != "" && doc.Text != "":
		return dErrors.New(dErrors.CodeBadRequest, "provide either base64 or text, not both")
	}

	if doc.Base64 != "" {
		if _, ok := allowedMimeTypes[doc.MimeType]; !ok {
			return dErrors.New(dErrors.CodeUnsupportedMedia,
				fmt.Sprintf("mime type %q is not supported", doc.MimeType))
		}
		if len(doc.Base64) > MaxBase64Bytes {
			return dErrors.New(dErrors.CodePayloadTooLarge, "base64 payload exceeds 10 MiB")
		}
		return nil
	}

	if doc.MimeType != "" && doc.MimeType != "text/plain" {
		return dErrors.New(dErrors.CodeUnsupportedMedia,
			fmt.Sprintf("mime type %q is not supported for text payloads", doc.MimeType))
	}
	if len(doc.Text) > MaxTextBytes {
		return dErrors.New(dErrors.CodePayloadTooLarge, "text payload exceeds 5 MiB")
	}
	return nil
}
