// Package intake implements the document intake pipeline: admission checks,
// normalization of extracted candidates into the canonical draft, validation,
// the correction-loop state machine, and reconciliation into the policy
// store.
package intake

import (
	"sort"
)

// PolicyDraft is the canonical working record of an intake. It is owned by a
// single invocation and never shared across concurrent intakes; stages
// produce new drafts instead of mutating across steps.
type PolicyDraft struct {
	PolicyNumber     string   `json:"policyNumber"`
	Name             string   `json:"name,omitempty"`
	Type             string   `json:"type,omitempty"`
	InsurerID        string   `json:"insurerId,omitempty"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Premium          *float64 `json:"premium"`
	PremiumFrequency string   `json:"premiumFrequency,omitempty"`
	CoverageAmount   *float64 `json:"coverageAmount,omitempty"`
	Deductible       *float64 `json:"deductible,omitempty"`
	HolderName       string   `json:"holderName,omitempty"`
	HolderAFM        string   `json:"holderAfm,omitempty"`
	HolderAddress    string   `json:"holderAddress,omitempty"`
	HolderPhone      string   `json:"holderPhone,omitempty"`
	HolderEmail      string   `json:"holderEmail,omitempty"`

	Vehicle  *DraftVehicle  `json:"vehicle,omitempty"`
	Property *DraftProperty `json:"property,omitempty"`

	Coverages     []DraftCoverage    `json:"coverages,omitempty"`
	Beneficiaries []DraftBeneficiary `json:"beneficiaries,omitempty"`
	Drivers       []DraftDriver      `json:"drivers,omitempty"`

	// Confidence is the extractor's 0-100 self-assessment. Informational
	// unless the operator configures a minimum.
	Confidence int `json:"confidence,omitempty"`
}

// DraftCoverage mirrors a coverage before commit.
type DraftCoverage struct {
	Name        string   `json:"name"`
	Amount      *float64 `json:"amount,omitempty"`
	Description string   `json:"description,omitempty"`
}

// DraftBeneficiary mirrors a beneficiary before commit.
type DraftBeneficiary struct {
	Name         string   `json:"name"`
	Relationship string   `json:"relationship,omitempty"`
	Percentage   *float64 `json:"percentage,omitempty"`
}

// DraftDriver mirrors a driver before commit.
type DraftDriver struct {
	Name          string `json:"name"`
	LicenseNumber string `json:"licenseNumber,omitempty"`
	BirthDate     string `json:"birthDate,omitempty"`
}

// DraftVehicle mirrors the vehicle block before commit.
type DraftVehicle struct {
	Plate string `json:"plate"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Year  *int   `json:"year,omitempty"`
}

// DraftProperty mirrors the property block before commit.
type DraftProperty struct {
	Address          string   `json:"address"`
	ConstructionYear *int     `json:"constructionYear,omitempty"`
	SquareMeters     *float64 `json:"squareMeters,omitempty"`
}

// ValidationErrors maps draft field names to human-readable messages. It is
// derived data: recomputed on every validation pass, never persisted.
type ValidationErrors map[string]string

// Valid reports whether the map is empty.
func (v ValidationErrors) Valid() bool { return len(v) == 0 }

// Clear removes a single field's error. This backs optimistic per-field
// clearing while the user edits; it never substitutes for re-validation.
func (v ValidationErrors) Clear(field string) { delete(v, field) }

// Fields returns the offending field names in stable order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
