package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"policygate/internal/extraction"
	"policygate/internal/intake"
	"policygate/internal/intake/handler/mocks"
	"policygate/internal/policy"
	dErrors "policygate/pkg/domain-errors"
	"policygate/pkg/testutil"
)

type IntakeHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *IntakeHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestIntakeHandlerSuite(t *testing.T) {
	suite.Run(t, new(IntakeHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(mockService, logger, nil)
	r := chi.NewRouter()
	handler.Register(r)
	return r, mockService
}

func serve(t *testing.T, r chi.Router, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = testutil.NewJSONRequest(t, method, target, body)
	} else {
		req = testutil.NewRequest(t, method, target)
	}
	return testutil.DoRequest(r, req)
}

func (s *IntakeHandlerSuite) TestHandleExtract() {
	router, mockService := newTestRouter(s.T())
	premium := 420.50
	mockService.EXPECT().IntakeDocument(
		gomock.Any(),
		extraction.Document{Text: "policy text", MimeType: "text/plain"},
		extraction.Hints{InsurerID: "ins-1", PolicyType: "auto"},
	).Return(&intake.IntakeResult{
		Draft: intake.PolicyDraft{
			PolicyNumber: "POL-123",
			StartDate:    "2026-01-01",
			EndDate:      "2027-01-01",
			Premium:      &premium,
			Confidence:   90,
		},
		State:      intake.StateValid,
		Confidence: 90,
	}, nil)

	w := serve(s.T(), router, http.MethodPost, "/intake/extract", ExtractRequest{
		Document: DocumentPayload{Text: "policy text", MimeType: "text/plain"},
		Hints:    HintsPayload{InsurerID: "ins-1", PolicyType: "auto"},
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "valid", resp["state"])
	draft := resp["draft"].(map[string]any)
	assert.Equal(s.T(), "POL-123", draft["policyNumber"])
}

func (s *IntakeHandlerSuite) TestHandleExtractEmptyDocument() {
	router, _ := newTestRouter(s.T())

	w := serve(s.T(), router, http.MethodPost, "/intake/extract", ExtractRequest{})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), string(dErrors.CodeBadRequest), resp["error"])
}

func (s *IntakeHandlerSuite) TestHandleExtractServiceFailure() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().IntakeDocument(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeExtractionFailed, "model call failed"))

	w := serve(s.T(), router, http.MethodPost, "/intake/extract", ExtractRequest{
		Document: DocumentPayload{Text: "x"},
	})

	assert.Equal(s.T(), http.StatusBadGateway, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), string(dErrors.CodeExtractionFailed), resp["error"])
}

func (s *IntakeHandlerSuite) TestHandleValidate() {
	router, mockService := newTestRouter(s.T())
	draft := intake.PolicyDraft{PolicyNumber: "POL-9"}
	mockService.EXPECT().Revalidate(gomock.Any(), draft).Return(&intake.IntakeResult{
		Draft:  draft,
		Errors: intake.ValidationErrors{"startDate": "required"},
		State:  intake.StateNeedsCorrection,
	})

	w := serve(s.T(), router, http.MethodPost, "/intake/validate", ValidateRequest{Draft: draft})

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "needs_correction", resp["state"])
	errs := resp["errors"].(map[string]any)
	assert.Equal(s.T(), "required", errs["startDate"])
}

func (s *IntakeHandlerSuite) TestHandleAnalyze() {
	router, mockService := newTestRouter(s.T())
	draft := intake.PolicyDraft{PolicyNumber: "POL-9"}
	mockService.EXPECT().Analyze(gomock.Any(), draft, "el").Return(&extraction.AnalysisResult{
		Summary:      "Auto policy with standard liability cover.",
		KeyCoverages: []string{"Liability"},
	}, nil)

	w := serve(s.T(), router, http.MethodPost, "/intake/analyze", AnalyzeRequest{Draft: draft, Locale: "el"})

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "Auto policy with standard liability cover.", resp["summary"])
}

func (s *IntakeHandlerSuite) TestHandleAnalyzeFailure() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeAnalysisFailed, "model returned no analysis"))

	w := serve(s.T(), router, http.MethodPost, "/intake/analyze", AnalyzeRequest{})

	assert.Equal(s.T(), http.StatusBadGateway, w.Code)
}

func (s *IntakeHandlerSuite) TestHandleCommit() {
	router, mockService := newTestRouter(s.T())
	draft := intake.PolicyDraft{PolicyNumber: "POL-9"}
	policyID := uuid.New()
	mockService.EXPECT().Commit(gomock.Any(), draft).Return(&intake.CommitResult{
		Aggregate:       policy.Aggregate{Policy: policy.Policy{ID: policyID, Number: "POL-9"}},
		ChildrenCreated: 2,
		Warnings:        []intake.ChildWarning{{Kind: "coverage", Index: 1, Reason: "name is required"}},
	}, nil)

	w := serve(s.T(), router, http.MethodPost, "/intake/commit", CommitRequest{Draft: draft})

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), float64(2), resp["childrenCreated"])
	warnings := resp["warnings"].([]any)
	require.Len(s.T(), warnings, 1)
}

func (s *IntakeHandlerSuite) TestHandleLookup() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Lookup(gomock.Any(), "ins-1", "POL-123").Return(&intake.LookupResult{
		Found: true,
		Draft: intake.PolicyDraft{PolicyNumber: "POL-123"},
		State: intake.StateValid,
	}, nil)

	w := serve(s.T(), router, http.MethodGet, "/intake/lookup?insurerId=ins-1&policyNumber=POL-123", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), true, resp["found"])
}

func (s *IntakeHandlerSuite) TestHandleLookupNotFound() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().Lookup(gomock.Any(), "ins-1", "NOPE").
		Return(&intake.LookupResult{Found: false}, nil)

	w := serve(s.T(), router, http.MethodGet, "/intake/lookup?insurerId=ins-1&policyNumber=NOPE", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), false, resp["found"])
}

func (s *IntakeHandlerSuite) TestHandleGetPolicy() {
	router, mockService := newTestRouter(s.T())
	policyID := uuid.New()
	mockService.EXPECT().GetPolicy(gomock.Any(), policyID.String()).Return(policy.Aggregate{
		Policy: policy.Policy{ID: policyID, Number: "POL-123", Status: policy.StatusActive},
	}, nil)

	w := serve(s.T(), router, http.MethodGet, "/policies/"+policyID.String(), nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	pol := resp["policy"].(map[string]any)
	assert.Equal(s.T(), "POL-123", pol["number"])
}

func (s *IntakeHandlerSuite) TestHandleGetPolicyInvalidID() {
	router, mockService := newTestRouter(s.T())
	mockService.EXPECT().GetPolicy(gomock.Any(), "not-a-uuid").
		Return(policy.Aggregate{}, dErrors.New(dErrors.CodeBadRequest, "invalid policy id"))

	w := serve(s.T(), router, http.MethodGet, "/policies/not-a-uuid", nil)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}
