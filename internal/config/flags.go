package config

import (
	"flag"
	"os"

	"github.com/dspetrov/docvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   data directory (database and key file location)
//	-n string   database file name
//	-k string   key file name
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-n", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DBName, "n", cfg.DBName, "database file name")
	fs.StringVar(&cfg.KeyFileName, "k", cfg.KeyFileName, "key file name")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

// parseEnv overlays Config with values from the environment. Only the
// passphrase is env-sourced; path settings stay with flags/JSON.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(PassphraseEnvVar); ok && v != "" {
		cfg.Passphrase = v
	}
}
