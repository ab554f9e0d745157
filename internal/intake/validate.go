package intake

import (
	"fmt"
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var afmPattern = regexp.MustCompile(`^\d{9}$`)

// Validate applies the draft invariants and returns a field→message map; an
// empty map means the draft is valid. Pure and deterministic: it runs once
// after normalization and once per correction-loop submission.
func Validate(d PolicyDraft) ValidationErrors {
	errs := ValidationErrors{}

	if d.PolicyNumber == "" {
		errs["policyNumber"] = "required"
	}
	if d.StartDate == "" {
		errs["startDate"] = "required"
	}
	if d.EndDate == "" {
		errs["endDate"] = "required"
	}
	if d.Premium == nil {
		errs["premium"] = "required"
	}

	start, startErr := time.Parse(dateLayout, d.StartDate)
	end, endErr := time.Parse(dateLayout, d.EndDate)
	if d.StartDate != "" && startErr != nil {
		errs["startDate"] = "invalid date, expected YYYY-MM-DD"
	}
	if d.EndDate != "" && endErr != nil {
		errs["endDate"] = "invalid date, expected YYYY-MM-DD"
	}
	// Both fields must be present and well-formed before ordering is
	// checked, so a "required" message is never overwritten.
	if d.StartDate != "" && d.EndDate != "" && startErr == nil && endErr == nil && !start.Before(end) {
		errs["endDate"] = "must be after start date"
	}

	if d.Premium != nil && *d.Premium < 0 {
		errs["premium"] = "must not be negative"
	}
	if d.CoverageAmount != nil && *d.CoverageAmount < 0 {
		errs["coverageAmount"] = "must not be negative"
	}
	if d.Deductible != nil && *d.Deductible < 0 {
		errs["deductible"] = "must not be negative"
	}

	if d.HolderAFM != "" && !afmPattern.MatchString(d.HolderAFM) {
		errs["holderAfm"] = "invalid format"
	}

	for i, b := range d.Beneficiaries {
		if b.Percentage != nil && (*b.Percentage < 0 || *b.Percentage > 100) {
			errs[fmt.Sprintf("beneficiaries[%d].percentage", i)] = "must be between 0 and 100"
		}
	}

	return errs
}
