package models

import "time"

// Audit event types written by the store.
const (
	EventDocSave       = "DOC_SAVE"
	EventSecurityAlert = "SECURITY_ALERT"
)

// AuditEvent is one row of the append-only security ledger. Details reference
// document titles and ids only, never content or key material.
type AuditEvent struct {
	ID        int64
	EventType string

	// UserID is the optional actor reference; nil for events that are not
	// attributable to a user (e.g. tamper detection during a read).
	UserID *int64

	Timestamp time.Time
	Details   string
}
