package intake

import (
	"strings"

	"policygate/internal/extraction"
)

// defaultConfidence is recorded when the extractor omits its score.
const defaultConfidence = 75

// Normalize flattens a candidate extraction into the canonical draft. It is
// total and idempotent: malformed or missing groups contribute no fields,
// extracted values win over hint defaults, and empty extracted values never
// clobber anything. It never fails.
func Normalize(c *extraction.CandidateExtraction, hints extraction.Hints) PolicyDraft {
	draft := PolicyDraft{
		InsurerID:  strings.TrimSpace(hints.InsurerID),
		Type:       strings.TrimSpace(hints.PolicyType),
		Confidence: defaultConfidence,
	}
	if c == nil {
		return draft
	}

	if p := c.Policy; p != nil {
		setString(&draft.PolicyNumber, p.Number)
		setString(&draft.Name, p.Name)
		setString(&draft.Type, p.Type)
		setString(&draft.StartDate, p.StartDate)
		setString(&draft.EndDate, p.EndDate)
		setString(&draft.PremiumFrequency, p.PremiumFrequency)
		setMoney(&draft.Premium, p.Premium)
		setMoney(&draft.CoverageAmount, p.CoverageAmount)
		setMoney(&draft.Deductible, p.Deductible)
	}
	if i := c.Insurer; i != nil {
		setString(&draft.InsurerID, i.ID)
	}
	if h := c.Policyholder; h != nil {
		setString(&draft.HolderName, h.Name)
		setString(&draft.HolderAFM, h.AFM)
		setString(&draft.HolderAddress, h.Address)
		setString(&draft.HolderPhone, h.Phone)
		setString(&draft.HolderEmail, h.Email)
	}

	for _, cov := range c.Coverages {
		dc := DraftCoverage{}
		setString(&dc.Name, cov.Name)
		setString(&dc.Description, cov.Description)
		setMoney(&dc.Amount, cov.Amount)
		if dc != (DraftCoverage{}) {
			draft.Coverages = append(draft.Coverages, dc)
		}
	}
	for _, ben := range c.Beneficiaries {
		db := DraftBeneficiary{}
		setString(&db.Name, ben.Name)
		setString(&db.Relationship, ben.Relationship)
		setMoney(&db.Percentage, ben.Percentage)
		if db != (DraftBeneficiary{}) {
			draft.Beneficiaries = append(draft.Beneficiaries, db)
		}
	}
	for _, drv := range c.Drivers {
		dd := DraftDriver{}
		setString(&dd.Name, drv.Name)
		setString(&dd.LicenseNumber, drv.LicenseNumber)
		setString(&dd.BirthDate, drv.BirthDate)
		if dd != (DraftDriver{}) {
			draft.Drivers = append(draft.Drivers, dd)
		}
	}

	if v := c.Vehicle; v != nil {
		dv := DraftVehicle{}
		setString(&dv.Plate, v.Plate)
		setString(&dv.Make, v.Make)
		setString(&dv.Model, v.Model)
		setYear(&dv.Year, v.Year)
		if dv != (DraftVehicle{}) {
			draft.Vehicle = &dv
		}
	}
	if p := c.Property; p != nil {
		dp := DraftProperty{}
		setString(&dp.Address, p.Address)
		setYear(&dp.ConstructionYear, p.ConstructionYear)
		setMoney(&dp.SquareMeters, p.SquareMeters)
		if dp != (DraftProperty{}) {
			draft.Property = &dp
		}
	}

	if c.Confidence != nil {
		if f, ok := c.Confidence.Overall.Float(); ok {
			draft.Confidence = clampConfidence(int(f))
		}
	}
	return draft
}

// setString copies a non-empty extracted value; empty values are extraction
// noise and must not overwrite the target.
func setString(dst *string, src *string) {
	if src == nil {
		return
	}
	if v := strings.TrimSpace(*src); v != "" {
		*dst = v
	}
}

// setMoney coerces a numeric-looking value, leaving dst nil when absent or
// unparseable so "missing" stays distinguishable from "explicitly zero".
func setMoney(dst **float64, src *extraction.LooseString) {
	if f, ok := src.Float(); ok {
		v := f
		*dst = &v
	}
}

func setYear(dst **int, src *extraction.LooseString) {
	if f, ok := src.Float(); ok {
		v := int(f)
		*dst = &v
	}
}

func clampConfidence(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
