package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrAuthentication is returned by Decrypt whenever a token fails to verify:
// tampered ciphertext, wrong key, or corrupted storage. Nothing about the
// cause leaks to the caller.
var ErrAuthentication = errors.New("authentication failed")

const (
	tokenVersion = 0x01

	// token layout: version(1) | unix time(8) | nonce(12) | sealed payload
	tokenHeaderLen = 1 + 8
	nonceLen       = 12
)

// selfTestPlaintext is encrypted and decrypted on construction to catch key
// corruption or misconfiguration before any document I/O happens.
var selfTestPlaintext = []byte("docvault cipher self-test")

// Cipher provides authenticated encryption (AES-256-GCM) with self-contained
// tokens: each token embeds a version, an issue timestamp, the nonce and the
// authentication tag, so Decrypt needs only the key.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher wraps key (32 bytes) and runs a round-trip self-test.
// Construction fails if the self-test does not pass.
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}

	c := &Cipher{aead: aead}

	token, err := c.Encrypt(selfTestPlaintext)
	if err != nil {
		return nil, fmt.Errorf("cipher self-test encrypt: %w", err)
	}
	roundTrip, err := c.Decrypt(token)
	if err != nil {
		return nil, fmt.Errorf("cipher self-test decrypt: %w", err)
	}
	if !bytes.Equal(roundTrip, selfTestPlaintext) {
		return nil, errors.New("cipher self-test: round trip mismatch")
	}

	return c, nil
}

// Encrypt seals plaintext into an opaque token safe to store as a blob.
// The version/timestamp header is authenticated as additional data.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	header := make([]byte, tokenHeaderLen)
	header[0] = tokenVersion
	binary.BigEndian.PutUint64(header[1:], uint64(time.Now().Unix()))

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	token := make([]byte, 0, tokenHeaderLen+nonceLen+len(plaintext)+c.aead.Overhead())
	token = append(token, header...)
	token = append(token, nonce...)
	token = c.aead.Seal(token, nonce, plaintext, header)

	return token, nil
}

// Decrypt opens a token produced by Encrypt. Any malformed or unverifiable
// token yields ErrAuthentication; partially decrypted data never escapes.
func (c *Cipher) Decrypt(token []byte) ([]byte, error) {
	if len(token) < tokenHeaderLen+nonceLen+c.aead.Overhead() {
		return nil, ErrAuthentication
	}
	if token[0] != tokenVersion {
		return nil, ErrAuthentication
	}

	header := token[:tokenHeaderLen]
	nonce := token[tokenHeaderLen : tokenHeaderLen+nonceLen]
	sealed := token[tokenHeaderLen+nonceLen:]

	plaintext, err := c.aead.Open(nil, nonce, sealed, header)
	if err != nil {
		return nil, ErrAuthentication
	}
	// Open yields a nil slice for empty plaintext; callers always get a
	// non-nil result so absence of data stays distinguishable from nil.
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// IssuedAt extracts the freshness timestamp from a token without verifying
// it. The value is advisory only; trust requires a successful Decrypt.
func IssuedAt(token []byte) (time.Time, error) {
	if len(token) < tokenHeaderLen || token[0] != tokenVersion {
		return time.Time{}, ErrAuthentication
	}
	return time.Unix(int64(binary.BigEndian.Uint64(token[1:tokenHeaderLen])), 0), nil
}
