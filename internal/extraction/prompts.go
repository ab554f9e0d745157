package extraction

import (
	"fmt"
	"strings"
)

// maxKeyCoverages bounds the analysis contract's coverage list.
const maxKeyCoverages = 5

// extractionSchema is the fixed output contract sent with every extraction
// request. Changing a key here is a contract version change: the candidate
// struct tags must move with it.
const extractionSchema = `{
  "policy": {"number": "", "name": "", "type": "auto|home|life|health|other", "startDate": "YYYY-MM-DD", "endDate": "YYYY-MM-DD", "premium": 0, "premiumFrequency": "monthly|quarterly|semiannual|annual", "coverageAmount": 0, "deductible": 0},
  "insurer": {"id": "", "name": ""},
  "policyholder": {"name": "", "afm": "", "address": "", "phone": "", "email": ""},
  "coverages": [{"name": "", "amount": 0, "description": ""}],
  "vehicle": {"plate": "", "make": "", "model": "", "year": 0},
  "property": {"address": "", "constructionYear": 0, "squareMeters": 0},
  "beneficiaries": [{"name": "", "relationship": "", "percentage": 0}],
  "drivers": [{"name": "", "licenseNumber": "", "birthDate": "YYYY-MM-DD"}],
  "perks": [""],
  "claimProcess": "",
  "possibleClaims": [""],
  "confidence": {"overall": 0}
}`

func extractionPrompt(hints Hints) string {
	var b strings.Builder
	b.WriteString("You extract structured data from insurance policy documents.\n")
	b.WriteString("Read the attached document and fill the JSON schema below.\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Omit any key you cannot find in the document. Never invent values.\n")
	b.WriteString("- Dates must be YYYY-MM-DD.\n")
	b.WriteString("- afm is the holder's 9-digit tax number if printed.\n")
	b.WriteString("- confidence.overall is your 0-100 confidence in the extraction as a whole.\n")
	if hints.InsurerID != "" {
		fmt.Fprintf(&b, "- The caller believes the insurer is %q; confirm or correct from the document.\n", hints.InsurerID)
	}
	if hints.PolicyType != "" {
		fmt.Fprintf(&b, "- The caller believes the policy type is %q; confirm or correct from the document.\n", hints.PolicyType)
	}
	b.WriteString("\nRespond with JSON only (no markdown):\n")
	b.WriteString(extractionSchema)
	return b.String()
}

func analysisPrompt(verifiedDraft, locale string) string {
	if locale == "" {
		locale = "en"
	}
	return fmt.Sprintf(`You summarize verified insurance policy data for the policyholder.
Write in locale %q, plain language, no jargon.

Policy data:
%s

Respond with JSON only (no markdown):
{"summary": "one sentence", "keyCoverages": ["up to %d plain-language coverages"], "keyNumbers": ["key monetary figures with labels"], "thingsToKnow": "one cautionary note", "benefits": ["included perks or benefits"]}`,
		locale, verifiedDraft, maxKeyCoverages)
}
