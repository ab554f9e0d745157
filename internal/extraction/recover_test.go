package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON_PlainObject(t *testing.T) {
	var c CandidateExtraction
	err := decodeJSON(`{"policy":{"number":"POL-1"}}`, &c)

	require.NoError(t, err)
	require.NotNil(t, c.Policy)
	assert.Equal(t, "POL-1", *c.Policy.Number)
}

func TestDecodeJSON_FencedObject(t *testing.T) {
	var c CandidateExtraction
	err := decodeJSON("```json\n{\"insurer\":{\"id\":\"ins-9\"}}\n```", &c)

	require.NoError(t, err)
	require.NotNil(t, c.Insurer)
	assert.Equal(t, "ins-9", *c.Insurer.ID)
}

func TestDecodeJSON_EmbeddedInProse(t *testing.T) {
	text := `Here is the extracted data you asked for:
{"policy":{"number":"POL-2","premium":450.5}}
Let me know if anything is missing.`

	var c CandidateExtraction
	err := decodeJSON(text, &c)

	require.NoError(t, err)
	require.NotNil(t, c.Policy)
	assert.Equal(t, "POL-2", *c.Policy.Number)
	f, ok := c.Policy.Premium.Float()
	require.True(t, ok)
	assert.Equal(t, 450.5, f)
}

func TestDecodeJSON_BracesInsideStrings(t *testing.T) {
	text := `note: {"claimProcess":"call {insurer} at 210-1234567"} trailing`

	var c CandidateExtraction
	err := decodeJSON(text, &c)

	require.NoError(t, err)
	require.NotNil(t, c.ClaimProcess)
	assert.Contains(t, *c.ClaimProcess, "{insurer}")
}

func TestDecodeJSON_NoObject(t *testing.T) {
	var c CandidateExtraction
	err := decodeJSON("the document could not be read", &c)

	assert.Error(t, err)
}

func TestLooseString_NumberAndStringForms(t *testing.T) {
	var c CandidateExtraction
	err := decodeJSON(`{"policy":{"premium":"1.234,56","coverageAmount":100000,"deductible":"€ 500"}}`, &c)
	require.NoError(t, err)

	premium, ok := c.Policy.Premium.Float()
	require.True(t, ok)
	assert.Equal(t, 1234.56, premium)

	amount, ok := c.Policy.CoverageAmount.Float()
	require.True(t, ok)
	assert.Equal(t, 100000.0, amount)

	deductible, ok := c.Policy.Deductible.Float()
	require.True(t, ok)
	assert.Equal(t, 500.0, deductible)
}

func TestLooseString_USThousandsSeparators(t *testing.T) {
	var c CandidateExtraction
	err := decodeJSON(`{"policy":{"coverageAmount":"1,234.56"}}`, &c)
	require.NoError(t, err)

	amount, ok := c.Policy.CoverageAmount.Float()
	require.True(t, ok)
	assert.Equal(t, 1234.56, amount)
}

func TestLooseString_Unparseable(t *testing.T) {
	var c CandidateExtraction
	err := decodeJSON(`{"policy":{"premium":"five hundred"}}`, &c)
	require.NoError(t, err)

	_, ok := c.Policy.Premium.Float()
	assert.False(t, ok)
}

func TestAnalysisResult_Empty(t *testing.T) {
	assert.True(t, AnalysisResult{}.Empty())
	assert.True(t, AnalysisResult{Summary: "  "}.Empty())
	assert.False(t, AnalysisResult{Benefits: []string{"roadside assistance"}}.Empty())
	assert.False(t, AnalysisResult{Summary: "covers the car"}.Empty())
}
