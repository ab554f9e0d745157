package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedErrors(t *testing.T) {
	t.Run("New carries the code", func(t *testing.T) {
		err := New(CodeNotFound, "record not found")
		assert.True(t, Is(err, CodeNotFound))
		assert.False(t, Is(err, CodeConflict))
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("Wrap preserves the cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(CodePersistenceFailed, "create policy", cause)
		assert.ErrorIs(t, err, cause)
		assert.True(t, Is(err, CodePersistenceFailed))
		assert.Contains(t, err.Error(), "create policy")
	})

	t.Run("Is sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeBadRequest, "bad input"))
		assert.True(t, Is(err, CodeBadRequest))
	})

	t.Run("uncoded errors default to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
		assert.False(t, Is(errors.New("plain"), CodeBadRequest))
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:        http.StatusBadRequest,
		CodeValidationFailed:  http.StatusBadRequest,
		CodeUnsupportedMedia:  http.StatusUnsupportedMediaType,
		CodePayloadTooLarge:   http.StatusRequestEntityTooLarge,
		CodeNotFound:          http.StatusNotFound,
		CodeConflict:          http.StatusConflict,
		CodeExtractionFailed:  http.StatusBadGateway,
		CodeAnalysisFailed:    http.StatusBadGateway,
		CodeUnavailable:       http.StatusBadGateway,
		CodePersistenceFailed: http.StatusInternalServerError,
		CodeInternal:          http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
