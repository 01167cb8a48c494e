// Package models defines the data model of the encrypted document store.
package models

import "time"

// FileType tags the origin format of a stored document. The set is also
// enforced by a CHECK constraint at the schema level.
type FileType string

const (
	FileTypeDOC FileType = "DOC"
	FileTypePDF FileType = "PDF"
	FileTypeTXT FileType = "TXT"
	FileTypeIMG FileType = "IMG"
)

// Valid reports whether t is one of the allowed file types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeDOC, FileTypePDF, FileTypeTXT, FileTypeIMG:
		return true
	}
	return false
}

// Document is a decrypted, integrity-verified document as returned to callers.
// Content never appears in this form at rest; rows hold AEAD ciphertext plus
// a SHA-256 hex digest of the plaintext.
type Document struct {
	// ID is the surrogate key assigned on insert.
	ID int64

	// Title is unique across the store and is the external lookup key.
	Title string

	// Content is the decrypted plaintext.
	Content string

	// SHA256Hash is the hex digest of Content, verified against the stored
	// value on every read.
	SHA256Hash string

	// FileType is the enumerated origin tag.
	FileType FileType

	// CreatedAt is set once at insert.
	CreatedAt time.Time
}

// DocumentRow is the persisted shape of a document: ciphertext instead of
// plaintext. Repositories speak this type; the store translates.
type DocumentRow struct {
	ID         int64
	Title      string
	Ciphertext []byte
	SHA256Hash string
	FileType   FileType
	CreatedAt  time.Time
}

// DocumentSummary is a search result: identity only, no content.
type DocumentSummary struct {
	ID    int64
	Title string
}
