package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/eslsoft/expreal/internal/infrastructure/config"
)

// NewConnection opens the sqlite lexicon store and applies the schema.
func NewConnection(cfg *config.Config) (*sql.DB, func(), error) {
	return Open(cfg.Lexicon.DSN)
}

// Open opens a sqlite database at dsn and applies the schema.
func Open(dsn string) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, func() {
		_ = db.Close()
	}, nil
}
