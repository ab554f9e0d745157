// Package policy defines the committed policy aggregate, its child entities,
// and the durable Store boundary.
package policy

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks the aggregate lifecycle. Intake only ever creates active
// policies; updates happen through a separate path.
type Status string

const StatusActive Status = "active"

// Policy is the committed parent record. Money fields stay pointers so an
// unset value is distinguishable from an explicit zero, mirroring the draft
// it was reconciled from.
type Policy struct {
	ID               uuid.UUID `json:"id"`
	Status           Status    `json:"status"`
	Number           string    `json:"number"`
	Name             string    `json:"name,omitempty"`
	Type             string    `json:"type,omitempty"`
	InsurerID        string    `json:"insurerId,omitempty"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	Premium          *float64  `json:"premium"`
	PremiumFrequency string    `json:"premiumFrequency,omitempty"`
	CoverageAmount   *float64  `json:"coverageAmount,omitempty"`
	Deductible       *float64  `json:"deductible,omitempty"`
	HolderName       string    `json:"holderName,omitempty"`
	HolderAFM        string    `json:"holderAfm,omitempty"`
	HolderAddress    string    `json:"holderAddress,omitempty"`
	HolderPhone      string    `json:"holderPhone,omitempty"`
	HolderEmail      string    `json:"holderEmail,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Coverage is a single named coverage under a policy.
type Coverage struct {
	ID          uuid.UUID `json:"id"`
	PolicyID    uuid.UUID `json:"policyId"`
	Name        string    `json:"name"`
	Amount      *float64  `json:"amount,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Beneficiary designates a recipient with a percentage share in [0,100].
// Shares are not required to sum to 100 across a policy; partial designation
// is legal.
type Beneficiary struct {
	ID           uuid.UUID `json:"id"`
	PolicyID     uuid.UUID `json:"policyId"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship,omitempty"`
	Percentage   *float64  `json:"percentage,omitempty"`
}

// Driver is a named driver on an auto policy.
type Driver struct {
	ID            uuid.UUID `json:"id"`
	PolicyID      uuid.UUID `json:"policyId"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"licenseNumber,omitempty"`
	BirthDate     string    `json:"birthDate,omitempty"`
}

// Vehicle is the insured vehicle on an auto policy.
type Vehicle struct {
	ID       uuid.UUID `json:"id"`
	PolicyID uuid.UUID `json:"policyId"`
	Plate    string    `json:"plate"`
	Make     string    `json:"make,omitempty"`
	Model    string    `json:"model,omitempty"`
	Year     *int      `json:"year,omitempty"`
}

// Property is the insured property on a home policy.
type Property struct {
	ID               uuid.UUID `json:"id"`
	PolicyID         uuid.UUID `json:"policyId"`
	Address          string    `json:"address"`
	ConstructionYear *int      `json:"constructionYear,omitempty"`
	SquareMeters     *float64  `json:"squareMeters,omitempty"`
}

// Aggregate is a policy together with its committed children.
type Aggregate struct {
	Policy        Policy        `json:"policy"`
	Coverages     []Coverage    `json:"coverages,omitempty"`
	Beneficiaries []Beneficiary `json:"beneficiaries,omitempty"`
	Drivers       []Driver      `json:"drivers,omitempty"`
	Vehicle       *Vehicle      `json:"vehicle,omitempty"`
	Property      *Property     `json:"property,omitempty"`
}
