package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func validDraft() PolicyDraft {
	return PolicyDraft{
		PolicyNumber: "POL-123",
		StartDate:    "2026-01-01",
		EndDate:      "2027-01-01",
		Premium:      floatPtr(420.50),
		HolderAFM:    "123456789",
	}
}

func TestValidate(t *testing.T) {
	t.Run("complete draft passes", func(t *testing.T) {
		errs := Validate(validDraft())
		assert.True(t, errs.Valid())
	})

	t.Run("missing required fields reported together", func(t *testing.T) {
		errs := Validate(PolicyDraft{})
		assert.Equal(t, "required", errs["policyNumber"])
		assert.Equal(t, "required", errs["startDate"])
		assert.Equal(t, "required", errs["endDate"])
		assert.Equal(t, "required", errs["premium"])
	})

	t.Run("malformed dates flagged", func(t *testing.T) {
		d := validDraft()
		d.StartDate = "01/01/2026"
		d.EndDate = "2027-13-40"
		errs := Validate(d)
		assert.Equal(t, "invalid date, expected YYYY-MM-DD", errs["startDate"])
		assert.Equal(t, "invalid date, expected YYYY-MM-DD", errs["endDate"])
	})

	t.Run("end date must be after start date", func(t *testing.T) {
		d := validDraft()
		d.StartDate = "2027-01-01"
		d.EndDate = "2026-01-01"
		errs := Validate(d)
		assert.Equal(t, "must be after start date", errs["endDate"])

		d.EndDate = d.StartDate
		errs = Validate(d)
		assert.Equal(t, "must be after start date", errs["endDate"])
	})

	t.Run("missing start date does not trigger the ordering check", func(t *testing.T) {
		d := validDraft()
		d.StartDate = ""
		errs := Validate(d)
		assert.Equal(t, "required", errs["startDate"])
		assert.NotContains(t, errs, "endDate")
	})

	t.Run("missing end date keeps its required message", func(t *testing.T) {
		d := validDraft()
		d.EndDate = ""
		errs := Validate(d)
		assert.Equal(t, "required", errs["endDate"])
	})

	t.Run("negative amounts flagged", func(t *testing.T) {
		d := validDraft()
		d.Premium = floatPtr(-1)
		d.CoverageAmount = floatPtr(-50)
		d.Deductible = floatPtr(-0.5)
		errs := Validate(d)
		assert.Equal(t, "must not be negative", errs["premium"])
		assert.Equal(t, "must not be negative", errs["coverageAmount"])
		assert.Equal(t, "must not be negative", errs["deductible"])
	})

	t.Run("zero amounts are legal", func(t *testing.T) {
		d := validDraft()
		d.Premium = floatPtr(0)
		assert.True(t, Validate(d).Valid())
	})

	t.Run("tax id format", func(t *testing.T) {
		d := validDraft()
		d.HolderAFM = "12345"
		errs := Validate(d)
		assert.Equal(t, "invalid format", errs["holderAfm"])

		d.HolderAFM = ""
		assert.True(t, Validate(d).Valid(), "absent tax id is not an error")
	})

	t.Run("beneficiary percentage bounds", func(t *testing.T) {
		d := validDraft()
		d.Beneficiaries = []DraftBeneficiary{
			{Name: "A", Percentage: floatPtr(60)},
			{Name: "B", Percentage: floatPtr(101)},
			{Name: "C", Percentage: floatPtr(-1)},
			{Name: "D"},
		}
		errs := Validate(d)
		assert.Equal(t, "must be between 0 and 100", errs["beneficiaries[1].percentage"])
		assert.Equal(t, "must be between 0 and 100", errs["beneficiaries[2].percentage"])
		assert.NotContains(t, errs, "beneficiaries[0].percentage")
		assert.NotContains(t, errs, "beneficiaries[3].percentage")
	})

	t.Run("shares need not sum to 100", func(t *testing.T) {
		d := validDraft()
		d.Beneficiaries = []DraftBeneficiary{
			{Name: "A", Percentage: floatPtr(30)},
			{Name: "B", Percentage: floatPtr(30)},
		}
		assert.True(t, Validate(d).Valid())
	})

	t.Run("pure, input untouched", func(t *testing.T) {
		d := validDraft()
		before := d
		_ = Validate(d)
		assert.Equal(t, before, d)
	})
}

func TestValidationErrorsFields(t *testing.T) {
	errs := ValidationErrors{"endDate": "required", "premium": "required", "policyNumber": "required"}
	assert.Equal(t, []string{"endDate", "policyNumber", "premium"}, errs.Fields())

	errs.Clear("premium")
	assert.NotContains(t, errs, "premium")
	assert.False(t, errs.Valid())
}
