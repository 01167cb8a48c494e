// Package documents persists encrypted document rows.
package documents

import (
	"context"

	"github.com/dspetrov/docvault/internal/models"
)

// Repository describes persistence operations for document rows. No delete is
// exposed: a stored row never transitions back to absent.
type Repository interface {
	// Insert stores a new row. A unique-title conflict is reported as
	// common.ErrDuplicateTitle.
	Insert(ctx context.Context, row *models.DocumentRow) error

	// GetByID returns a row by its surrogate key, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.DocumentRow, error)

	// Search lists up to limit documents whose title contains keyword
	// (case-sensitive), in insertion order.
	Search(ctx context.Context, keyword string, limit int) ([]models.DocumentSummary, error)
}
