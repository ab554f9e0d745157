// Package audit records intake lifecycle events through an in-process
// publisher/worker pair. Publishing never blocks the pipeline and the trail
// is best-effort.
package audit

import "time"

// EventType labels a lifecycle event.
type EventType string

const (
	EventExtractionSucceeded EventType = "extraction_succeeded"
	EventExtractionFailed    EventType = "extraction_failed"
	EventDraftValidated      EventType = "draft_validated"
	EventPolicyCommitted     EventType = "policy_committed"
)

// Event is one intake lifecycle record.
type Event struct {
	Type      EventType
	RequestID string
	PolicyID  string
	Detail    string
	Warnings  int
	Timestamp time.Time
}
