package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB represents a database connection with driver information
type DB struct {
	*sql.DB
	driver string
}

// NewDB opens and pings a connection. For sqlite3 the directory holding the
// database file is created first.
func NewDB(driver, dsn string) (*DB, error) {
	if driver == "sqlite3" {
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &DB{
		DB:     sqlDB,
		driver: driver,
	}, nil
}

// Driver returns the database driver name
func (db *DB) Driver() string {
	return db.driver
}

// Rebind rewrites ? placeholders into the driver's bind syntax
func (db *DB) Rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func ensureSQLiteDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	path := dsn
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	return nil
}
