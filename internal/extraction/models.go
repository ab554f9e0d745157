// Package extraction adapts the external document-understanding service. It
// owns the two wire contracts (candidate extraction, plain-language analysis)
// and shields the rest of the pipeline from the service's loose output.
package extraction

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Document is a gate-approved payload. Exactly one of Base64 or Text is set.
type Document struct {
	Base64   string
	Text     string
	MimeType string
}

// Hints carry caller-selected context. They survive extraction failures so a
// fallback to manual entry keeps the user's selections.
type Hints struct {
	InsurerID  string
	PolicyType string
}

// LooseString accepts a JSON string, number, or boolean and preserves its
// text form. The extractor is not reliable about quoting numeric fields, so
// every numeric-looking leaf uses this type and the normalizer coerces it.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	*s = LooseString(b)
	return nil
}

func (s *LooseString) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Float parses the value as a decimal, tolerating currency symbols, thousands
// separators, and comma decimals.
func (s *LooseString) Float() (float64, bool) {
	if s == nil {
		return 0, false
	}
	raw := strings.TrimSpace(string(*s))
	if raw == "" {
		return 0, false
	}
	cleaned := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			cleaned = append(cleaned, r)
		}
	}
	c := string(cleaned)
	// "1.234,56" and "1234,56" both mean comma-decimal; "1,234.56" does not.
	if strings.Contains(c, ",") {
		if strings.LastIndex(c, ",") > strings.LastIndex(c, ".") {
			c = strings.ReplaceAll(c, ".", "")
			c = strings.Replace(c, ",", ".", 1)
		}
		c = strings.ReplaceAll(c, ",", "")
	}
	f, err := strconv.ParseFloat(c, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CandidateExtraction is the fixed, versioned output contract of the
// extraction call. Every field is optional; absent groups contribute nothing
// downstream.
type CandidateExtraction struct {
	Policy         *PolicyGroup       `json:"policy,omitempty"`
	Insurer        *InsurerGroup      `json:"insurer,omitempty"`
	Policyholder   *PolicyholderGroup `json:"policyholder,omitempty"`
	Coverages      []CoverageGroup    `json:"coverages,omitempty"`
	Vehicle        *VehicleGroup      `json:"vehicle,omitempty"`
	Property       *PropertyGroup     `json:"property,omitempty"`
	Beneficiaries  []BeneficiaryGroup `json:"beneficiaries,omitempty"`
	Drivers        []DriverGroup      `json:"drivers,omitempty"`
	Perks          []string           `json:"perks,omitempty"`
	ClaimProcess   *string            `json:"claimProcess,omitempty"`
	PossibleClaims []string           `json:"possibleClaims,omitempty"`
	Confidence     *ConfidenceGroup   `json:"confidence,omitempty"`
}

type PolicyGroup struct {
	Number           *string      `json:"number,omitempty"`
	Name             *string      `json:"name,omitempty"`
	Type             *string      `json:"type,omitempty"`
	StartDate        *string      `json:"startDate,omitempty"`
	EndDate          *string      `json:"endDate,omitempty"`
	Premium          *LooseString `json:"premium,omitempty"`
	PremiumFrequency *string      `json:"premiumFrequency,omitempty"`
	CoverageAmount   *LooseString `json:"coverageAmount,omitempty"`
	Deductible       *LooseString `json:"deductible,omitempty"`
}

type InsurerGroup struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
}

type PolicyholderGroup struct {
	Name    *string `json:"name,omitempty"`
	AFM     *string `json:"afm,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

type CoverageGroup struct {
	Name        *string      `json:"name,omitempty"`
	Amount      *LooseString `json:"amount,omitempty"`
	Description *string      `json:"description,omitempty"`
}

type VehicleGroup struct {
	Plate *string      `json:"plate,omitempty"`
	Make  *string      `json:"make,omitempty"`
	Model *string      `json:"model,omitempty"`
	Year  *LooseString `json:"year,omitempty"`
}

type PropertyGroup struct {
	Address          *string      `json:"address,omitempty"`
	ConstructionYear *LooseString `json:"constructionYear,omitempty"`
	SquareMeters     *LooseString `json:"squareMeters,omitempty"`
}

type BeneficiaryGroup struct {
	Name         *string      `json:"name,omitempty"`
	Relationship *string      `json:"relationship,omitempty"`
	Percentage   *LooseString `json:"percentage,omitempty"`
}

type DriverGroup struct {
	Name          *string `json:"name,omitempty"`
	LicenseNumber *string `json:"licenseNumber,omitempty"`
	BirthDate     *string `json:"birthDate,omitempty"`
}

type ConfidenceGroup struct {
	Overall *LooseString `json:"overall,omitempty"`
}

// AnalysisResult is the summarization contract. At least one non-empty
// sub-field makes it a valid (possibly degenerate) result.
type AnalysisResult struct {
	Summary      string   `json:"summary,omitempty"`
	KeyCoverages []string `json:"keyCoverages,omitempty"`
	KeyNumbers   []string `json:"keyNumbers,omitempty"`
	ThingsToKnow string   `json:"thingsToKnow,omitempty"`
	Benefits     []string `json:"benefits,omitempty"`
}

// Empty reports whether every sub-field is absent or blank.
func (r AnalysisResult) Empty() bool {
	return strings.TrimSpace(r.Summary) == "" &&
		len(r.KeyCoverages) == 0 &&
		len(r.KeyNumbers) == 0 &&
		strings.TrimSpace(r.ThingsToKnow) == "" &&
		len(r.Benefits) == 0
}
