// Package common defines shared sentinel errors used across docvault layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateTitle = errors.New("duplicate title")

	// Validation errors.
	ErrInvalidFileType = errors.New("invalid file type")

	// Security-critical errors. ErrTamperDetected covers both an AEAD
	// verification failure and a content-hash mismatch after decryption;
	// the audit trail distinguishes the two internally.
	ErrTamperDetected = errors.New("tamper detected")
)
