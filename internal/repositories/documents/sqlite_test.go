package documents

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/dspetrov/docvault/internal/common"
	"github.com/dspetrov/docvault/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL UNIQUE,
  content BLOB NOT NULL,
  sha256_hash TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  file_type TEXT NOT NULL CHECK (file_type IN ('DOC', 'PDF', 'TXT', 'IMG'))
);
`)
	require.NoError(t, err)

	return db
}

func TestInsertAndGetByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	row := &models.DocumentRow{
		Title:      "report",
		Ciphertext: []byte{0x01, 0x02, 0x03},
		SHA256Hash: "abc123",
		FileType:   models.FileTypeTXT,
	}
	require.NoError(t, r.Insert(ctx, row))
	assert.Equal(t, int64(1), row.ID)

	got, err := r.GetByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "report", got.Title)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got.Ciphertext)
	assert.Equal(t, "abc123", got.SHA256Hash)
	assert.Equal(t, models.FileTypeTXT, got.FileType)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestInsert_DuplicateTitle(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	row1 := &models.DocumentRow{Title: "T", Ciphertext: []byte("c1"), SHA256Hash: "h1", FileType: models.FileTypeTXT}
	require.NoError(t, r.Insert(ctx, row1))

	row2 := &models.DocumentRow{Title: "T", Ciphertext: []byte("c2"), SHA256Hash: "h2", FileType: models.FileTypeTXT}
	err := r.Insert(ctx, row2)
	assert.ErrorIs(t, err, common.ErrDuplicateTitle)

	// the original row is untouched
	got, err := r.GetByID(ctx, row1.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("c1"), got.Ciphertext)
}

func TestSearch_CaseSensitiveSubstring(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, title := range []string{"Alpha report", "alpha notes", "beta Alphabet", "gamma"} {
		row := &models.DocumentRow{Title: title, Ciphertext: []byte("x"), SHA256Hash: "h", FileType: models.FileTypeTXT}
		require.NoError(t, r.Insert(ctx, row))
	}

	result, err := r.Search(ctx, "Alpha", 50)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Alpha report", result[0].Title)
	assert.Equal(t, "beta Alphabet", result[1].Title)
}

func TestSearch_LimitAndOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		row := &models.DocumentRow{
			Title:      fmt.Sprintf("doc-x-%03d", i),
			Ciphertext: []byte("x"),
			SHA256Hash: "h",
			FileType:   models.FileTypeTXT,
		}
		require.NoError(t, r.Insert(ctx, row))
	}

	result, err := r.Search(ctx, "x", 50)
	require.NoError(t, err)
	require.Len(t, result, 50)

	// insertion order, ids ascending
	for i := 1; i < len(result); i++ {
		assert.Less(t, result[i-1].ID, result[i].ID)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	result, err := r.Search(context.Background(), "nothing", 50)
	require.NoError(t, err)
	assert.Empty(t, result)
}
