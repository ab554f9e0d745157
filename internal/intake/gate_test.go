package intake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"policygate/internal/extraction"
	dErrors "policygate/pkg/domain-errors"
)

func TestCheckPayload(t *testing.T) {
	t.Run("empty payload rejected", func(t *testing.T) {
		err := CheckPayload(extraction.Document{})
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("both base64 and text rejected", func(t *testing.T) {
		err := CheckPayload(extraction.Document{Base64: "aGk=", Text: "hi", MimeType: "text/plain"})
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	})

	t.Run("supported mime types pass", func(t *testing.T) {
		for _, mime := range []string{"application/pdf", "image/jpeg", "image/png", "image/webp"} {
			assert.NoError(t, CheckPayload(extraction.Document{Base64: "aGk=", MimeType: mime}), mime)
		}
	})

	t.Run("unsupported mime type rejected", func(t *testing.T) {
		err := CheckPayload(extraction.Document{Base64: "aGk=", MimeType: "application/zip"})
		assert.True(t, dErrors.Is(err, dErrors.CodeUnsupportedMedia))
	})

	t.Run("base64 at limit passes", func(t *testing.T) {
		doc := extraction.Document{Base64: strings.Repeat("A", MaxBase64Bytes), MimeType: "application/pdf"}
		assert.NoError(t, CheckPayload(doc))
	})

	t.Run("base64 one byte over limit rejected", func(t *testing.T) {
		doc := extraction.Document{Base64: strings.Repeat("A", MaxBase64Bytes+1), MimeType: "application/pdf"}
		err := CheckPayload(doc)
		assert.True(t, dErrors.Is(err, dErrors.CodePayloadTooLarge))
	})

	t.Run("text without mime passes", func(t *testing.T) {
		assert.NoError(t, CheckPayload(extraction.Document{Text: "policy contents"}))
	})

	t.Run("text with non-plain mime rejected", func(t *testing.T) {
		err := CheckPayload(extraction.Document{Text: "hi", MimeType: "application/pdf"})
		assert.True(t, dErrors.Is(err, dErrors.CodeUnsupportedMedia))
	})

	t.Run("text at limit passes, one over rejected", func(t *testing.T) {
		assert.NoError(t, CheckPayload(extraction.Document{Text: strings.Repeat("x", MaxTextBytes)}))
		err := CheckPayload(extraction.Document{Text: strings.Repeat("x", MaxTextBytes+1)})
		assert.True(t, dErrors.Is(err, dErrors.CodePayloadTooLarge))
	})
}
