package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher's inbox into the store. Store failures are
// logged and skipped; the trail is best-effort.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil && w.logger != nil {
				w.logger.Warn("audit append failed",
					"type", string(event.Type),
					"error", err.Error(),
				)
			}
		}
	}
}
