package intake

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"policygate/internal/intake/metrics"
	"policygate/internal/policy"
	dErrors "policygate/pkg/domain-errors"
	"policygate/pkg/requestcontext"
)

// ChildWarning reports one child record that was skipped or failed during
// reconciliation. Warnings are data returned to the caller, never raised:
// the parent already committed.
type ChildWarning struct {
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// CommitResult is the outcome of reconciliation: the committed aggregate,
// how many children made it, and the warnings for those that did not.
type CommitResult struct {
	Aggregate       policy.Aggregate `json:"aggregate"`
	ChildrenCreated int              `json:"childrenCreated"`
	Warnings        []ChildWarning   `json:"warnings,omitempty"`
	// BeneficiaryShareTotal is informational: shares are not required to
	// sum to 100, but callers may want to surface the gap.
	BeneficiaryShareTotal float64 `json:"beneficiaryShareTotal,omitempty"`
}

// Reconciler decomposes a valid draft into the parent aggregate plus
// independently-persisted children.
type Reconciler struct {
	store   policy.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewReconciler(store policy.Store, logger *slog.Logger, m *metrics.Metrics) *Reconciler {
	return &Reconciler{store: store, logger: logger, metrics: m}
}

// Commit creates the parent first; a parent failure aborts the whole
// operation and nothing else is attempted. Children are then created
// independently and in parallel: each holds only its own generated id and
// the already-committed parent id, so ordering is irrelevant. A child with a
// missing required field is skipped; a store failure is collected. Neither
// aborts the commit.
func (r *Reconciler) Commit(ctx context.Context, draft PolicyDraft) (*CommitResult, error) {
	parent := policyFromDraft(draft)
	parent.ID = uuid.New()
	parent.Status = policy.StatusActive
	parent.CreatedAt = requestcontext.Now(ctx)

	if err := r.store.CreatePolicy(ctx, parent); err != nil {
		return nil, dErrors.Wrap(dErrors.CodePersistenceFailed, "create policy", err)
	}
	r.metrics.IncPoliciesCommitted()

	result := &CommitResult{Aggregate: policy.Aggregate{Policy: parent}}
	var mu sync.Mutex
	warn := func(kind string, index int, reason string) {
		mu.Lock()
		defer mu.Unlock()
		result.Warnings = append(result.Warnings, ChildWarning{Kind: kind, Index: index, Reason: reason})
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, cov := range draft.Coverages {
		g.Go(func() error {
			if cov.Name == "" {
				warn("coverage", i, "name is required")
				return nil
			}
			record := policy.Coverage{
				ID:          uuid.New(),
				PolicyID:    parent.ID,
				Name:        cov.Name,
				Amount:      cov.Amount,
				Description: cov.Description,
			}
			if err := r.store.CreateCoverage(gctx, record); err != nil {
				warn("coverage", i, err.Error())
				return nil
			}
			mu.Lock()
			result.Aggregate.Coverages = append(result.Aggregate.Coverages, record)
			mu.Unlock()
			return nil
		})
	}

	for i, ben := range draft.Beneficiaries {
		g.Go(func() error {
			if ben.Name == "" {
				warn("beneficiary", i, "name is required")
				return nil
			}
			record := policy.Beneficiary{
				ID:           uuid.New(),
				PolicyID:     parent.ID,
				Name:         ben.Name,
				Relationship: ben.Relationship,
				Percentage:   ben.Percentage,
			}
			if err := r.store.CreateBeneficiary(gctx, record); err != nil {
				warn("beneficiary", i, err.Error())
				return nil
			}
			mu.Lock()
			result.Aggregate.Beneficiaries = append(result.Aggregate.Beneficiaries, record)
			if ben.Percentage != nil {
				result.BeneficiaryShareTotal += *ben.Percentage
			}
			mu.Unlock()
			return nil
		})
	}

	for i, drv := range draft.Drivers {
		g.Go(func() error {
			if drv.Name == "" {
				warn("driver", i, "name is required")
				return nil
			}
			record := policy.Driver{
				ID:            uuid.New(),
				PolicyID:      parent.ID,
				Name:          drv.Name,
				LicenseNumber: drv.LicenseNumber,
				BirthDate:     drv.BirthDate,
			}
			if err := r.store.CreateDriver(gctx, record); err != nil {
				warn("driver", i, err.Error())
				return nil
			}
			mu.Lock()
			result.Aggregate.Drivers = append(result.Aggregate.Drivers, record)
			mu.Unlock()
			return nil
		})
	}

	if v := draft.Vehicle; v != nil {
		g.Go(func() error {
			if v.Plate == "" {
				warn("vehicle", 0, "plate is required")
				return nil
			}
			record := policy.Vehicle{
				ID:       uuid.New(),
				PolicyID: parent.ID,
				Plate:    v.Plate,
				Make:     v.Make,
				Model:    v.Model,
				Year:     v.Year,
			}
			if err := r.store.CreateVehicle(gctx, record); err != nil {
				warn("vehicle", 0, err.Error())
				return nil
			}
			mu.Lock()
			result.Aggregate.Vehicle = &record
			mu.Unlock()
			return nil
		})
	}

	if p := draft.Property; p != nil {
		g.Go(func() error {
			if p.Address == "" {
				warn("property", 0, "address is required")
				return nil
			}
			record := policy.Property{
				ID:               uuid.New(),
				PolicyID:         parent.ID,
				Address:          p.Address,
				ConstructionYear: p.ConstructionYear,
				SquareMeters:     p.SquareMeters,
			}
			if err := r.store.CreateProperty(gctx, record); err != nil {
				warn("property", 0, err.Error())
				return nil
			}
			mu.Lock()
			result.Aggregate.Property = &record
			mu.Unlock()
			return nil
		})
	}

	// Goroutines only collect; Wait cannot fail.
	_ = g.Wait()

	sortChildren(result)
	result.ChildrenCreated = len(result.Aggregate.Coverages) +
		len(result.Aggregate.Beneficiaries) +
		len(result.Aggregate.Drivers)
	if result.Aggregate.Vehicle != nil {
		result.ChildrenCreated++
	}
	if result.Aggregate.Property != nil {
		result.ChildrenCreated++
	}

	r.metrics.AddChildrenCommitted(result.ChildrenCreated)
	r.metrics.AddChildWarnings(len(result.Warnings))
	if len(result.Warnings) > 0 && r.logger != nil {
		r.logger.WarnContext(ctx, "policy committed with child warnings",
			"request_id", requestcontext.RequestID(ctx),
			"policy_id", parent.ID.String(),
			"warnings", len(result.Warnings),
		)
	}
	return result, nil
}

// sortChildren restores a stable order after the parallel creation loop so
// responses do not flap between runs.
func sortChildren(result *CommitResult) {
	sort.Slice(result.Aggregate.Coverages, func(i, j int) bool {
		return result.Aggregate.Coverages[i].Name < result.Aggregate.Coverages[j].Name
	})
	sort.Slice(result.Aggregate.Beneficiaries, func(i, j int) bool {
		return result.Aggregate.Beneficiaries[i].Name < result.Aggregate.Beneficiaries[j].Name
	})
	sort.Slice(result.Aggregate.Drivers, func(i, j int) bool {
		return result.Aggregate.Drivers[i].Name < result.Aggregate.Drivers[j].Name
	})
	sort.Slice(result.Warnings, func(i, j int) bool {
		a, b := result.Warnings[i], result.Warnings[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Index < b.Index
	})
}

func policyFromDraft(d PolicyDraft) policy.Policy {
	return policy.Policy{
		Number:           d.PolicyNumber,
		Name:             d.Name,
		Type:             d.Type,
		InsurerID:        d.InsurerID,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		Premium:          d.Premium,
		PremiumFrequency: d.PremiumFrequency,
		CoverageAmount:   d.CoverageAmount,
		Deductible:       d.Deductible,
		HolderName:       d.HolderName,
		HolderAFM:        d.HolderAFM,
		HolderAddress:    d.HolderAddress,
		HolderPhone:      d.HolderPhone,
		HolderEmail:      d.HolderEmail,
	}
}

// draftFromPolicy rebuilds a partial draft from a stored policy for the
// identifier-search entry path.
func draftFromPolicy(p policy.Policy) PolicyDraft {
	return PolicyDraft{
		PolicyNumber:     p.Number,
		Name:             p.Name,
		Type:             p.Type,
		InsurerID:        p.InsurerID,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Premium:          p.Premium,
		PremiumFrequency: p.PremiumFrequency,
		CoverageAmount:   p.CoverageAmount,
		Deductible:       p.Deductible,
		HolderName:       p.HolderName,
		HolderAFM:        p.HolderAFM,
		HolderAddress:    p.HolderAddress,
		HolderPhone:      p.HolderPhone,
		HolderEmail:      p.HolderEmail,
	}
}
