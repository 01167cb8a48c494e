// Package store wires key derivation, authenticated encryption and the sqlite
// schema into the encrypted document store. A Store is an explicitly
// constructed handle: one instance per process, passed to every caller, torn
// down with Close to wipe key material.
package store

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dspetrov/docvault/internal/common"
	"github.com/dspetrov/docvault/internal/config"
	"github.com/dspetrov/docvault/internal/cryptox"
	"github.com/dspetrov/docvault/internal/dbx"
	"github.com/dspetrov/docvault/internal/filex"
	"github.com/dspetrov/docvault/internal/logging"
	"github.com/dspetrov/docvault/internal/migrations"
	"github.com/dspetrov/docvault/internal/models"
	"github.com/dspetrov/docvault/internal/repositories/audit"
	"github.com/dspetrov/docvault/internal/repositories/documents"
)

// searchLimit caps SearchDocuments results.
const searchLimit = 50

// Store is the encrypted document store handle.
type Store struct {
	logger logging.Logger
	keys   *cryptox.KeyManager
	cipher *cryptox.Cipher
	db     *sql.DB

	docs  documents.Repository
	audit audit.Repository
}

// New performs the startup sequence: data directory, key derivation or load,
// cipher self-test, database open with per-connection pragmas, schema
// migrations. Every failure here is fatal; no operation may be served after a
// partial startup.
func New(cfg *config.Config, logger logging.Logger) (*Store, error) {
	if err := filex.EnsureDir(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	keys := cryptox.NewKeyManager([]byte(cfg.Passphrase), cfg.KeyFilePath())
	key, err := keys.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("key init: %w", err)
	}
	if cfg.Passphrase == config.DefaultPassphrase {
		logger.Warn(context.Background(), "using default development passphrase",
			"env", config.PassphraseEnvVar)
	}

	cphr, err := cryptox.NewCipher(key)
	if err != nil {
		keys.Wipe()
		return nil, fmt.Errorf("cipher init: %w", err)
	}

	db, err := openDB(cfg.DBPath())
	if err != nil {
		keys.Wipe()
		return nil, fmt.Errorf("db init: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		keys.Wipe()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &Store{
		logger: logger,
		keys:   keys,
		cipher: cphr,
		db:     db,
		docs:   documents.NewSQLiteRepository(db),
		audit:  audit.NewSQLiteRepository(db),
	}, nil
}

// openDB opens the sqlite database. Foreign-key enforcement and secure delete
// are DSN pragmas so every pooled connection carries them, not just the first.
func openDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=secure_delete(1)&_pragma=busy_timeout(20000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Close releases the database pool and wipes the derived key. The store must
// not be used afterwards.
func (s *Store) Close() error {
	err := s.db.Close()
	s.keys.Wipe()
	return err
}

// SaveDocument hashes and encrypts content and inserts the row together with
// its DOC_SAVE audit event in one transaction.
//
// A duplicate title returns common.ErrDuplicateTitle; the unique constraint
// arbitrates concurrent saves. Any other failure rolls the whole transaction
// back, so a document row is never visible without its audit event having been
// attempted.
func (s *Store) SaveDocument(ctx context.Context, title, content string, fileType models.FileType) error {
	log := s.logger.With("op", uuid.NewString(), "title", title)

	if !fileType.Valid() {
		log.Warn(ctx, "rejected document with unknown file type", "file_type", string(fileType))
		return common.ErrInvalidFileType
	}

	hash := sha256.Sum256([]byte(content))
	contentHash := hex.EncodeToString(hash[:])

	ciphertext, err := s.cipher.Encrypt([]byte(content))
	if err != nil {
		log.Error(ctx, "encryption failed", "error", err)
		return fmt.Errorf("encrypt: %w", err)
	}

	row := &models.DocumentRow{
		Title:      title,
		Ciphertext: ciphertext,
		SHA256Hash: contentHash,
		FileType:   fileType,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := documents.NewSQLiteRepository(tx).Insert(ctx, row); err != nil {
			return err
		}
		// Audit is best-effort relative to the primary write: its own
		// failure is logged but does not roll back the document.
		auditErr := audit.NewSQLiteRepository(tx).Record(ctx, models.EventDocSave, nil,
			fmt.Sprintf("document saved: %s", title))
		if auditErr != nil {
			log.Error(ctx, "audit write failed", "error", auditErr)
		}
		return nil
	})

	if errors.Is(err, common.ErrDuplicateTitle) {
		log.Warn(ctx, "document already exists")
		return common.ErrDuplicateTitle
	}
	if err != nil {
		log.Error(ctx, "save failed", "error", err)
		return fmt.Errorf("save document: %w", err)
	}

	log.Info(ctx, "document saved", "id", row.ID)
	return nil
}

// GetDocument fetches, decrypts and verifies one document.
//
// A missing row returns common.ErrNotFound. A decryption failure or a
// content-hash mismatch returns common.ErrTamperDetected after recording a
// SECURITY_ALERT in the audit ledger; unauthenticated plaintext is never
// returned.
func (s *Store) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	log := s.logger.With("op", uuid.NewString(), "id", id)

	row, err := s.docs.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		log.Error(ctx, "fetch failed", "error", err)
		return nil, fmt.Errorf("get document: %w", err)
	}

	plaintext, err := s.cipher.Decrypt(row.Ciphertext)
	if err != nil {
		s.securityAlert(ctx, log,
			fmt.Sprintf("decryption failure for document %d (%s)", row.ID, row.Title))
		return nil, common.ErrTamperDetected
	}

	// Defense in depth: the AEAD tag verified, but the stored plaintext hash
	// must still match. Constant-time comparison avoids timing side channels.
	hash := sha256.Sum256(plaintext)
	currentHash := hex.EncodeToString(hash[:])
	if subtle.ConstantTimeCompare([]byte(currentHash), []byte(row.SHA256Hash)) != 1 {
		s.securityAlert(ctx, log,
			fmt.Sprintf("content hash mismatch for document %d (%s)", row.ID, row.Title))
		return nil, common.ErrTamperDetected
	}

	if issuedAt, err := cryptox.IssuedAt(row.Ciphertext); err == nil {
		log.Debug(ctx, "document verified", "encrypted_at", issuedAt)
	}

	return &models.Document{
		ID:         row.ID,
		Title:      row.Title,
		Content:    string(plaintext),
		SHA256Hash: currentHash,
		FileType:   row.FileType,
		CreatedAt:  row.CreatedAt,
	}, nil
}

// SearchDocuments matches keyword as a case-sensitive substring of titles, in
// insertion order, capped at 50 results. It never fails: internal errors are
// logged and an empty result is returned.
func (s *Store) SearchDocuments(ctx context.Context, keyword string) []models.DocumentSummary {
	log := s.logger.With("op", uuid.NewString())

	result, err := s.docs.Search(ctx, keyword, searchLimit)
	if err != nil {
		log.Error(ctx, "search failed", "error", err)
		return nil
	}
	return result
}

// RecentAuditEvents returns recent ledger entries, newest first. An empty
// eventType matches all events.
func (s *Store) RecentAuditEvents(ctx context.Context, eventType string, limit int) ([]models.AuditEvent, error) {
	return s.audit.ListByType(ctx, eventType, limit)
}

// securityAlert records a SECURITY_ALERT outside any write transaction.
// Details name the document, never its content. A failed alert write is
// surfaced in the process log only: it must not mask the tamper signal.
func (s *Store) securityAlert(ctx context.Context, log logging.Logger, details string) {
	log.Error(ctx, "tamper detected", "details", details)
	if err := s.audit.Record(ctx, models.EventSecurityAlert, nil, details); err != nil {
		log.Error(ctx, "audit write failed", "error", err)
	}
}
