package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dspetrov/docvault/internal/common"
	"github.com/dspetrov/docvault/internal/dbx"
	"github.com/dspetrov/docvault/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Insert stores a new document row. The unique constraint on title arbitrates
// concurrent inserts; there is no check-then-insert race.
func (r *SQLiteRepository) Insert(ctx context.Context, row *models.DocumentRow) error {
	query := `INSERT INTO documents (title, content, sha256_hash, file_type)
			values (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		row.Title, row.Ciphertext, row.SHA256Hash, string(row.FileType))
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrDuplicateTitle
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	row.ID = id
	return nil
}

// GetByID returns the stored row for id, including ciphertext and hash.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.DocumentRow, error) {
	query := `select id, title, content, sha256_hash, file_type, created_at
			from documents where id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	d := &models.DocumentRow{}
	var fileType string
	err := row.Scan(&d.ID, &d.Title, &d.Ciphertext, &d.SHA256Hash, &fileType, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	d.FileType = models.FileType(fileType)
	return d, nil
}

// Search matches keyword as a case-sensitive substring of title. instr() is
// used instead of LIKE because sqlite LIKE is case-insensitive for ASCII.
// Results come back in insertion order, capped at limit.
func (r *SQLiteRepository) Search(ctx context.Context, keyword string, limit int) ([]models.DocumentSummary, error) {
	query := `select id, title from documents
			where instr(title, ?) > 0
			order by id
			limit ?`
	rows, err := r.db.QueryContext(ctx, query, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}
	defer rows.Close()

	var result []models.DocumentSummary
	for rows.Next() {
		var item models.DocumentSummary
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// isUniqueViolation reports whether err is a sqlite unique-constraint error.
// The pure-Go driver exposes it only through the error text
// ("UNIQUE constraint failed: documents.title").
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
