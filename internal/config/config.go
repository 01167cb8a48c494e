// Package config handles configuration for docvault, including defaults,
// JSON overlay, command-line flags, and environment variables.
package config

import "path/filepath"

// PassphraseEnvVar names the environment variable holding the secret
// passphrase used for key derivation. The passphrase is never accepted as a
// command-line flag so it cannot leak through argv.
const PassphraseEnvVar = "DOCVAULT_SECRET"

// DefaultPassphrase is the documented fallback used when no passphrase is
// supplied. Acceptable only outside production.
const DefaultPassphrase = "docvault-dev-secret"

// Config holds runtime settings for the docvault store.
//
// Fields:
//   - DataDir: directory holding the database file and the key file.
//   - DBName: database file name inside DataDir.
//   - KeyFileName: derived-key file name inside DataDir.
//   - Passphrase: key-derivation secret (env-sourced, default fallback).
type Config struct {
	DataDir     string
	DBName      string
	KeyFileName string
	Passphrase  string
}

// LoadDefaults populates c with sensible defaults.
// NOTE: The passphrase default is insecure and should be overridden.
func (c *Config) LoadDefaults() {
	c.DataDir = "data"
	c.DBName = "docvault.db"
	c.KeyFileName = "secret.key"
	c.Passphrase = DefaultPassphrase
}

// DBPath returns the full path of the database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBName)
}

// KeyFilePath returns the full path of the derived-key file.
func (c *Config) KeyFilePath() string {
	return filepath.Join(c.DataDir, c.KeyFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags, and the environment. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}
