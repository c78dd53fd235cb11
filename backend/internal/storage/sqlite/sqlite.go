// Package sqlite is a single-file storage backend for small deployments and
// local development. It offers the same operations as the postgres storage.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/itchan-dev/bbs/shared/logger"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the database file at path and applies the schema.
func New(path string) (*Storage, error) {
	log := logger.Component("sqlite")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one connection avoids "database is locked"
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	log.Info("database initialized", "path", path)
	return &Storage{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}
