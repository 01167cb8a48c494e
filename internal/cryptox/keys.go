// Package cryptox implements key derivation and authenticated encryption for
// the document store.
package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/pbkdf2"

	"github.com/dspetrov/docvault/internal/filex"
)

const (
	// PBKDF2 parameters: SHA-256 core, deliberately slow.
	kdfIterations = 100000
	keyLength     = 32
)

// kdfSalt is fixed for behavioral parity with earlier deployments. Known
// weakness: a per-deployment random salt persisted next to the key file would
// be the stronger choice.
var kdfSalt = []byte("random_salt_value")

// DeriveKey stretches a low-entropy passphrase into a 32-byte key.
// Same passphrase and salt always yield the same key.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, kdfIterations, keyLength, sha256.New)
}

// KeyManager owns the process-wide derived key. The key is derived once from
// the passphrase (or loaded from the persisted key file) and cached for the
// lifetime of the manager. The passphrase itself is never persisted.
type KeyManager struct {
	passphrase []byte
	keyFile    string
	key        []byte
}

// NewKeyManager returns a manager that will derive from passphrase or load
// the encoded key from keyFile.
func NewKeyManager(passphrase []byte, keyFile string) *KeyManager {
	return &KeyManager{passphrase: passphrase, keyFile: keyFile}
}

// LoadOrCreate returns the 32-byte derived key.
//
// If the key file exists its URL-safe base64 content is decoded and used; a
// corrupt or wrong-length file is a fatal startup error, never a per-operation
// one. Otherwise the key is derived from the passphrase and persisted with
// owner-only permissions so later starts skip the derivation cost.
//
// Repeat calls within the same process return the identical cached key.
func (m *KeyManager) LoadOrCreate() ([]byte, error) {
	if m.key != nil {
		return m.key, nil
	}

	exists, err := filex.Exists(m.keyFile)
	if err != nil {
		return nil, fmt.Errorf("stat key file %s: %w", m.keyFile, err)
	}
	if exists {
		data, err := os.ReadFile(m.keyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file %s: %w", m.keyFile, err)
		}
		key, err := base64.URLEncoding.DecodeString(string(data))
		if err != nil {
			return nil, fmt.Errorf("key file %s is corrupt: %w", m.keyFile, err)
		}
		if len(key) != keyLength {
			return nil, fmt.Errorf("key file %s holds %d bytes, want %d", m.keyFile, len(key), keyLength)
		}
		m.key = key
		return m.key, nil
	}

	key := DeriveKey(m.passphrase, kdfSalt)

	encoded := base64.URLEncoding.EncodeToString(key)
	if err := filex.WriteSecretFile(m.keyFile, []byte(encoded)); err != nil {
		return nil, fmt.Errorf("persist key file: %w", err)
	}

	m.key = key
	return m.key, nil
}

// Wipe zeroes the cached key and the passphrase copy. The manager must not be
// used afterwards.
func (m *KeyManager) Wipe() {
	WipeByteArray(m.key)
	WipeByteArray(m.passphrase)
	m.key = nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
