// Package sqlstore keeps blobs in a two-column key/value table, on SQLite
// (pure Go, modernc.org/sqlite) or MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/idilsaglam/todokit/internal/store"
)

const opTimeout = 5 * time.Second

type dialect struct {
	driver string
	schema string
	upsert string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		schema: `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`,
		upsert: `INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	}

	mysqlDialect = dialect{
		driver: "mysql",
		schema: "CREATE TABLE IF NOT EXISTS kv (\n" +
			"    `key` VARCHAR(255) NOT NULL PRIMARY KEY,\n" +
			"    `value` LONGTEXT NOT NULL\n" +
			") DEFAULT CHARSET=utf8mb4",
		upsert: "INSERT INTO kv (`key`, `value`) VALUES (?, ?)\n" +
			"ON DUPLICATE KEY UPDATE `value` = VALUES(`value`)",
	}
)

const selectValue = "SELECT value FROM kv WHERE `key` = ?"

// Store is a Blob over a database/sql handle.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	db, err := sql.Open(sqliteDialect.driver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps writes serialized and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return open(db, sqliteDialect)
}

// OpenMySQL connects using a go-sql-driver DSN such as
// "user:pass@tcp(127.0.0.1:3306)/todos".
func OpenMySQL(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("open mysql: empty dsn")
	}
	db, err := sql.Open(mysqlDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return open(db, mysqlDialect)
}

func open(db *sql.DB, d dialect) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, dialect: d}, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, store.ErrEmptyKey
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var v string
	err := s.db.QueryRowContext(ctx, selectValue, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Set(key, value string) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
