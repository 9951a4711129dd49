// Command rangecard computes no-drag firing solutions from the terminal.
//
//	rangecard fire                      interactive cartridge menu
//	rangecard solve --cartridge ID --range M [--high] [--csv] [--facts] [--plot]
//	rangecard batch [file]              JSON requests in, JSON results out
//	rangecard catalog                   list known cartridges
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/database"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	catalog, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening catalog: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		cfg:     cfg,
		catalog: catalog,
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	err = newRootCmd(a).ExecuteContext(ctx)
	closeCatalog()

	var exit exitCode
	switch {
	case err == nil:
	case errors.As(err, &exit):
		os.Exit(int(exit))
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openCatalog uses Postgres when DATABASE_URL is set, the builtin loads otherwise.
func openCatalog(ctx context.Context, cfg *config.Config) (cartridges.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return cartridges.NewMemoryStore(cartridges.Builtin()), func() {}, nil
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return cartridges.NewPostgresStore(db), func() { db.Close() }, nil
}
