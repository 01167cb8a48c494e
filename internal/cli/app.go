// Package cli implements the interactive docvault shell.
package cli

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/dspetrov/docvault/internal/config"
	"github.com/dspetrov/docvault/internal/cryptox"
	"github.com/dspetrov/docvault/internal/logging"
	"github.com/dspetrov/docvault/internal/store"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *store.Store
	reader *bufio.Reader
}

// NewApp resolves the passphrase, constructs the store (fatal on any startup
// failure) and returns a ready shell.
func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	reader := bufio.NewReader(os.Stdin)

	// With no env passphrase, ask at the terminal before falling back to the
	// development default.
	if cfg.Passphrase == config.DefaultPassphrase && term.IsTerminal(int(os.Stdin.Fd())) {
		pw, err := GetPassword(os.Stdout)
		if err == nil && len(pw) > 0 {
			cfg.Passphrase = string(pw)
			cryptox.WipeByteArray(pw)
		}
	}

	st, err := store.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{config: cfg, logger: logger, store: st, reader: reader}, nil
}

// Run executes the REPL until exit or EOF, then tears the store down.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	a.Main(ctx)
}
