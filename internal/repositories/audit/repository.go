// Package audit persists the append-only security event ledger.
package audit

import (
	"context"

	"github.com/dspetrov/docvault/internal/models"
)

// Repository is the append-only audit ledger. There is deliberately no update
// or delete operation.
type Repository interface {
	// Record appends one event. userID may be nil for events not
	// attributable to a user.
	Record(ctx context.Context, eventType string, userID *int64, details string) error

	// ListByType returns the most recent events of the given type, newest
	// first, capped at limit. An empty eventType matches all events.
	ListByType(ctx context.Context, eventType string, limit int) ([]models.AuditEvent, error)
}
