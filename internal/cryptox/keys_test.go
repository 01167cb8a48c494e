package cryptox

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	passphrase := []byte("secret-passphrase")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(passphrase, salt)
	key2 := DeriveKey(passphrase, salt)

	assert.Equal(t, key1, key2)
	assert.Len(t, key1, 32)
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	passphrase := []byte("secret-passphrase")

	key1 := DeriveKey(passphrase, []byte("salt-1"))
	key2 := DeriveKey(passphrase, []byte("salt-2"))
	key3 := DeriveKey([]byte("other-passphrase"), []byte("salt-1"))

	assert.NotEqual(t, key1, key2)
	assert.NotEqual(t, key1, key3)
}

func TestKeyManager_CreatesAndPersists(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "secret.key")

	m := NewKeyManager([]byte("passphrase"), keyFile)
	key, err := m.LoadOrCreate()
	require.NoError(t, err)
	assert.Len(t, key, 32)

	// key file exists, owner-only, URL-safe base64 of the key
	info, err := os.Stat(keyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(keyFile)
	require.NoError(t, err)
	decoded, err := base64.URLEncoding.DecodeString(string(data))
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
}

func TestKeyManager_Idempotent(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "secret.key")

	m := NewKeyManager([]byte("passphrase"), keyFile)
	key1, err := m.LoadOrCreate()
	require.NoError(t, err)
	key2, err := m.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	// a fresh manager loads the persisted encoding instead of re-deriving
	m2 := NewKeyManager([]byte("passphrase"), keyFile)
	key3, err := m2.LoadOrCreate()
	require.NoError(t, err)
	assert.Equal(t, key1, key3)
}

func TestKeyManager_CorruptKeyFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "secret.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("!!! not base64 !!!"), 0o600))

	m := NewKeyManager([]byte("passphrase"), keyFile)
	_, err := m.LoadOrCreate()
	assert.Error(t, err)
}

func TestKeyManager_WrongLengthKeyFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "secret.key")
	short := base64.URLEncoding.EncodeToString([]byte("short"))
	require.NoError(t, os.WriteFile(keyFile, []byte(short), 0o600))

	m := NewKeyManager([]byte("passphrase"), keyFile)
	_, err := m.LoadOrCreate()
	assert.Error(t, err)
}

func TestKeyManager_Wipe(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "secret.key")

	m := NewKeyManager([]byte("passphrase"), keyFile)
	key, err := m.LoadOrCreate()
	require.NoError(t, err)

	m.Wipe()
	assert.Equal(t, make([]byte, 32), key)
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeByteArray(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	WipeByteArray(nil) // must not panic
}
