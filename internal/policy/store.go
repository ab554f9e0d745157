package policy

import (
	"context"

	"github.com/google/uuid"

	dErrors "policygate/pkg/domain-errors"
)

// ErrNotFound keeps store-level 404s consistent across implementations. It
// is a plain result, never a sample record: callers decide what a missing
// policy means.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")

// Store is the durable boundary for policies and their children. Each child
// create is independently callable so the reconciler can isolate failures.
// Writes to distinct policy IDs need no coordination; implementations must
// serialize writes targeting the same ID.
type Store interface {
	CreatePolicy(ctx context.Context, p Policy) error
	CreateCoverage(ctx context.Context, c Coverage) error
	CreateBeneficiary(ctx context.Context, b Beneficiary) error
	CreateDriver(ctx context.Context, d Driver) error
	CreateVehicle(ctx context.Context, v Vehicle) error
	CreateProperty(ctx context.Context, p Property) error

	// GetPolicy loads the aggregate with all committed children.
	GetPolicy(ctx context.Context, id uuid.UUID) (Aggregate, error)

	// FindByInsurerAndNumber backs the identifier-search entry path.
	// Returns ErrNotFound when no policy matches.
	FindByInsurerAndNumber(ctx context.Context, insurerID, number string) (Policy, error)
}
