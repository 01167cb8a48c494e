package audit

import (
	"context"
	"fmt"

	"github.com/dspetrov/docvault/internal/dbx"
	"github.com/dspetrov/docvault/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Binding it to a *sql.Tx lets an audit event commit atomically with the
// document write that triggered it.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Record appends one event to the ledger.
func (r *SQLiteRepository) Record(ctx context.Context, eventType string, userID *int64, details string) error {
	query := `INSERT INTO audit_log (event_type, user_id, details)
			values (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, eventType, userID, details)
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

// ListByType returns recent events of the given type, newest first.
func (r *SQLiteRepository) ListByType(ctx context.Context, eventType string, limit int) ([]models.AuditEvent, error) {
	query := `select id, event_type, user_id, timestamp, details from audit_log
			where (? = '' or event_type = ?)
			order by id desc
			limit ?`
	rows, err := r.db.QueryContext(ctx, query, eventType, eventType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select audit events: %w", err)
	}
	defer rows.Close()

	var result []models.AuditEvent
	for rows.Next() {
		var item models.AuditEvent
		if err := rows.Scan(&item.ID, &item.EventType, &item.UserID, &item.Timestamp, &item.Details); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
