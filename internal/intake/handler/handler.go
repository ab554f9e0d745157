// Package handler exposes the intake pipeline over HTTP. It stays thin:
// decode, delegate to the service, translate errors.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"policygate/internal/extraction"
	"policygate/internal/intake"
	"policygate/internal/platform/metrics"
	"policygate/internal/platform/middleware"
	"policygate/internal/policy"
	"policygate/pkg/platform/httputil"
	"policygate/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks Service

// Service defines the intake operations the handler delegates to.
type Service interface {
	IntakeDocument(ctx context.Context, doc extraction.Document, hints extraction.Hints) (*intake.IntakeResult, error)
	Revalidate(ctx context.Context, draft intake.PolicyDraft) *intake.IntakeResult
	Analyze(ctx context.Context, draft intake.PolicyDraft, locale string) (*extraction.AnalysisResult, error)
	Commit(ctx context.Context, draft intake.PolicyDraft) (*intake.CommitResult, error)
	Lookup(ctx context.Context, insurerID, number string) (*intake.LookupResult, error)
	GetPolicy(ctx context.Context, id string) (policy.Aggregate, error)
}

// Handler handles intake endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates the intake Handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{service: service, logger: logger, metrics: m}
}

// Register mounts the intake routes with their middleware chain.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(3 * time.Minute))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))

	router.Post("/intake/extract", h.handleExtract)
	router.Post("/intake/validate", h.handleValidate)
	router.Post("/intake/analyze", h.handleAnalyze)
	router.Post("/intake/commit", h.handleCommit)
	router.Get("/intake/lookup", h.handleLookup)
	router.Get("/policies/{id}", h.handleGetPolicy)

	r.Mount("/", router)
}

// handleExtract runs the full pipeline for one uploaded document.
func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ExtractRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.IntakeDocument(ctx, req.ExtractionDocument(), req.ExtractionHints())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleValidate re-validates an edited draft (correction loop submission;
// manual entry submits here too).
func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.service.Revalidate(ctx, req.Draft))
}

// handleAnalyze requests the advisory summary. Failures return an error
// envelope; the client decides whether to retry or commit without one.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Analyze(ctx, req.Draft, req.Locale)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleCommit reconciles a valid draft into the store. Child warnings ride
// along in the 201 body; they are not a failure.
func (h *Handler) handleCommit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CommitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Commit(ctx, req.Draft)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, result)
}

// handleLookup is the identifier-search entry path.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.Lookup(ctx, r.URL.Query().Get("insurerId"), r.URL.Query().Get("policyNumber"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// handleGetPolicy reads back a committed aggregate.
func (h *Handler) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agg, err := h.service.GetPolicy(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, agg)
}
