package policy

import _ "embed"

// Schema holds the DDL for the policy tables. Deployments apply it through
// their migration tooling; integration tests apply it directly.
//
//go:embed schema.sql
var Schema string
