// Package history keeps a ledger of the files the scaffold tool generated.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Artifact kinds
const (
	KindMigration  = "migration"
	KindController = "controller"
	KindModel      = "model"
	KindView       = "view"
	KindRoute      = "route"
)

const createTable = `CREATE TABLE IF NOT EXISTS scaffold_history (
	id VARCHAR(36) PRIMARY KEY,
	kind VARCHAR(32) NOT NULL,
	name VARCHAR(255) NOT NULL,
	table_name VARCHAR(255) NOT NULL,
	action VARCHAR(16) NOT NULL,
	path VARCHAR(1024) NOT NULL,
	created_at BIGINT NOT NULL
)`

// Entry is one generated file
type Entry struct {
	ID        string
	Kind      string
	Name      string
	Table     string
	Action    string
	Path      string
	CreatedAt time.Time
}

// Store records generated files
type Store interface {
	Record(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

// SQLStore is a Store on any database/sql driver the tool links in
type SQLStore struct {
	db *DB
}

// Open connects to the ledger database and creates its table if needed
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := NewDB(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Record stores an entry, assigning an ID and timestamp when missing
func (s *SQLStore) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := s.db.Rebind(`INSERT INTO scaffold_history
		(id, kind, name, table_name, action, path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.Kind, entry.Name, entry.Table, entry.Action, entry.Path,
		entry.CreatedAt.UnixNano())
	if err != nil {
		return entry, fmt.Errorf("failed to record %s: %w", entry.Path, err)
	}
	return entry, nil
}

// List returns the newest entries first. A limit of zero or less lists all.
func (s *SQLStore) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, kind, name, table_name, action, path, created_at
		FROM scaffold_history ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.Name, &e.Table, &e.Action, &e.Path, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		e.CreatedAt = time.Unix(0, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLStore)(nil)
