package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/CTAG07/wordwalk/internal/corpus"
)

// openStore opens the corpus database at path, creating the schema if needed.
// The returned function closes both the store and the database.
func openStore(ctx context.Context, path string, logger *slog.Logger) (*corpus.Store, func(), error) {
	db, err := sql.Open(sqliteDriver, path+dsnOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to set up database schema: %w", err)
	}

	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(logger)

	return store, func() {
		_ = store.Close()
		_ = db.Close()
	}, nil
}
