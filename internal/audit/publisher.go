package audit

import "log/slog"

// Publisher fans events into a bounded channel. When the buffer is full the
// event is dropped and counted in a log line: the pipeline must never stall
// on its own audit trail.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher builds a publisher with the given buffer size.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Publish enqueues the event without blocking.
func (p *Publisher) Publish(event Event) {
	if p == nil {
		return
	}
	select {
	case p.inbox <- event:
	default:
		if p.logger != nil {
			p.logger.Warn("audit event dropped, buffer full",
				"type", string(event.Type),
				"request_id", event.RequestID,
			)
		}
	}
}

// Inbox exposes the channel for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
