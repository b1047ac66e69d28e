// Package storage opens the SQLite database file and brings its schema up
// to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/budgetkeeper/internal/filex"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/dmitrijs2005/budgetkeeper/internal/repositories/repomanager"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the database at path with foreign keys
// enforced, and applies migrations through rm.
//
// The pool is limited to one connection: the program is a single-user
// process and all writes are serialized anyway.
func Open(ctx context.Context, path string, rm repomanager.RepositoryManager, log logging.Logger) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info(ctx, "database ready", "path", path)
	return db, nil
}
