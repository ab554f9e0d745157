package intake

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"policygate/internal/audit"
	"policygate/internal/extraction"
	"policygate/internal/intake/metrics"
	"policygate/internal/policy"
	dErrors "policygate/pkg/domain-errors"
	"policygate/pkg/requestcontext"
)

// IntakeResult is the pipeline's answer to one capture or correction step:
// the draft, its validation map, and where the wizard stands.
type IntakeResult struct {
	Draft      PolicyDraft      `json:"draft"`
	Errors     ValidationErrors `json:"errors,omitempty"`
	State      State            `json:"state"`
	Confidence int              `json:"confidence"`
}

// LookupResult is the identifier-search outcome. Found drafts enter the
// wizard at Extracted, already validated.
type LookupResult struct {
	Found  bool             `json:"found"`
	Draft  PolicyDraft      `json:"draft,omitempty"`
	Errors ValidationErrors `json:"errors,omitempty"`
	State  State            `json:"state,omitempty"`
}

// Service drives the intake pipeline. Each invocation owns its draft; the
// only shared state is the policy store and the lookup cache.
type Service struct {
	extractor     extraction.Client
	store         policy.Store
	cache         *policy.LookupCache
	reconciler    *Reconciler
	publisher     *audit.Publisher
	logger        *slog.Logger
	metrics       *metrics.Metrics
	minConfidence int
	tracer        trace.Tracer
}

// NewService wires the pipeline. cache and publisher may be nil.
func NewService(
	extractor extraction.Client,
	store policy.Store,
	cache *policy.LookupCache,
	publisher *audit.Publisher,
	logger *slog.Logger,
	m *metrics.Metrics,
	minConfidence int,
) *Service {
	return &Service{
		extractor:     extractor,
		store:         store,
		cache:         cache,
		reconciler:    NewReconciler(store, logger, m),
		publisher:     publisher,
		logger:        logger,
		metrics:       m,
		minConfidence: minConfidence,
		tracer:        otel.Tracer("policygate/intake"),
	}
}

// IntakeDocument runs gate → extract → normalize → validate for one uploaded
// document. Gate and extraction failures halt the attempt; the caller keeps
// its hints and may retry or fall back to search or manual entry.
func (s *Service) IntakeDocument(ctx context.Context, doc extraction.Document, hints extraction.Hints) (*IntakeResult, error) {
	requestID := requestcontext.RequestID(ctx)

	if err := CheckPayload(doc); err != nil {
		s.logger.WarnContext(ctx, "payload rejected at gate",
			"request_id", requestID,
			"mime_type", doc.MimeType,
			"error", err.Error(),
		)
		return nil, err
	}
	s.metrics.IncIntakesStarted()

	ctx, span := s.tracer.Start(ctx, "intake.extract")
	start := time.Now()
	candidate, err := s.extractor.Extract(ctx, doc, hints)
	s.metrics.ObserveExtractionLatency(time.Since(start))
	span.End()
	if err != nil {
		s.metrics.IncExtractionFailures()
		s.publish(audit.Event{
			Type:      audit.EventExtractionFailed,
			RequestID: requestID,
			Detail:    err.Error(),
			Timestamp: requestcontext.Now(ctx),
		})
		s.logger.ErrorContext(ctx, "extraction failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		return nil, err
	}

	draft := Normalize(candidate, hints)
	s.publish(audit.Event{
		Type:      audit.EventExtractionSucceeded,
		RequestID: requestID,
		Timestamp: requestcontext.Now(ctx),
	})

	state, _ := Next(StateInput, EventExtracted)
	return s.validateInto(ctx, draft, state, true), nil
}

// Revalidate is the correction-loop submission: the user edited one or more
// fields and the edited draft is re-validated authoritatively. Manual
// multi-step entry lands here too, validating only at submission time.
func (s *Service) Revalidate(ctx context.Context, draft PolicyDraft) *IntakeResult {
	state, _ := Next(StateNeedsCorrection, EventFieldEdited)
	return s.validateInto(ctx, draft, state, false)
}

// validateInto runs validation from the given pre-validation state and
// advances the wizard on the outcome. enforceFloor is set only on the
// extraction entry path: a resubmitted draft echoes the extractor's score
// unchanged, so gating it again would make needs_correction terminal.
func (s *Service) validateInto(ctx context.Context, draft PolicyDraft, from State, enforceFloor bool) *IntakeResult {
	errs := Validate(draft)
	for _, field := range errs.Fields() {
		s.metrics.IncValidationFailure(field)
	}

	next, _ := Next(from, validationEvent(errs))
	if enforceFloor && next == StateValid && s.minConfidence > 0 && draft.Confidence < s.minConfidence {
		// Structurally fine but below the operator's confidence floor:
		// route to a human for review first.
		next = StateNeedsCorrection
	}

	s.publish(audit.Event{
		Type:      audit.EventDraftValidated,
		RequestID: requestcontext.RequestID(ctx),
		Detail:    string(next),
		Warnings:  len(errs),
		Timestamp: requestcontext.Now(ctx),
	})

	return &IntakeResult{
		Draft:      draft,
		Errors:     errs,
		State:      next,
		Confidence: draft.Confidence,
	}
}

// Analyze produces the plain-language summary for a valid draft. The stage
// is advisory: callers treat failure as "no summary", never as a blocker.
func (s *Service) Analyze(ctx context.Context, draft PolicyDraft, locale string) (*extraction.AnalysisResult, error) {
	if errs := Validate(draft); !errs.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "draft has validation errors")
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "serialize draft", err)
	}

	ctx, span := s.tracer.Start(ctx, "intake.analyze")
	defer span.End()
	result, err := s.extractor.Analyze(ctx, raw, locale)
	if err != nil {
		s.metrics.IncAnalysisFailures()
		s.logger.WarnContext(ctx, "analysis failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return nil, err
	}
	return result, nil
}

// Commit re-validates and reconciles the draft into the store. Validation
// failures surface as the field map inside the result of Revalidate; here an
// invalid draft is a caller bug and fails fast.
func (s *Service) Commit(ctx context.Context, draft PolicyDraft) (*CommitResult, error) {
	if errs := Validate(draft); !errs.Valid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "draft has validation errors")
	}

	ctx, span := s.tracer.Start(ctx, "intake.commit")
	defer span.End()
	result, err := s.reconciler.Commit(ctx, draft)
	if err != nil {
		s.logger.ErrorContext(ctx, "reconciliation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		return nil, err
	}

	s.publish(audit.Event{
		Type:      audit.EventPolicyCommitted,
		RequestID: requestcontext.RequestID(ctx),
		PolicyID:  result.Aggregate.Policy.ID.String(),
		Warnings:  len(result.Warnings),
		Timestamp: requestcontext.Now(ctx),
	})
	s.logger.InfoContext(ctx, "policy committed",
		"request_id", requestcontext.RequestID(ctx),
		"policy_id", result.Aggregate.Policy.ID.String(),
		"children_created", result.ChildrenCreated,
		"warnings", len(result.Warnings),
	)
	return result, nil
}

// Lookup is the identifier-search entry path. Not-found is a result, not an
// error, and no sample data is ever substituted.
func (s *Service) Lookup(ctx context.Context, insurerID, number string) (*LookupResult, error) {
	if insurerID == "" || number == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "insurerId and policyNumber are required")
	}

	found, ok := s.cache.Get(ctx, insurerID, number)
	if !ok {
		var err error
		found, err = s.store.FindByInsurerAndNumber(ctx, insurerID, number)
		if errors.Is(err, policy.ErrNotFound) {
			return &LookupResult{Found: false}, nil
		}
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodePersistenceFailed, "policy lookup", err)
		}
		s.cache.Set(ctx, insurerID, number, found)
	}

	draft := draftFromPolicy(found)
	state, _ := Next(StateInput, EventExtracted)
	res := s.validateInto(ctx, draft, state, false)
	return &LookupResult{
		Found:  true,
		Draft:  res.Draft,
		Errors: res.Errors,
		State:  res.State,
	}, nil
}

// GetPolicy reads back a committed aggregate.
func (s *Service) GetPolicy(ctx context.Context, id string) (policy.Aggregate, error) {
	parsed, err := parsePolicyID(id)
	if err != nil {
		return policy.Aggregate{}, err
	}
	return s.store.GetPolicy(ctx, parsed)
}

func (s *Service) publish(event audit.Event) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

func parsePolicyID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, "invalid policy id")
	}
	return parsed, nil
}
