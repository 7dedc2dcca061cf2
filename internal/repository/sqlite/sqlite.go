package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"colorize/internal/model"
)

const (
	// Codec names the block compression stored with every table.
	Codec = "zstd"
	// CompressionLevel is fixed for the lifetime of a file.
	CompressionLevel = 5
)

// DB wraps the SQLite database connection with thread-safe access.
type DB struct {
	conn   *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// New opens (or creates) a dataset file and makes sure the schema exists.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn, path: dbPath}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Create truncates any existing file at dbPath and registers the given tables
// in a fresh, empty dataset file.
func Create(dbPath string, tables ...model.TableSchema) (*DB, error) {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to remove existing file: %w", err)
		}
	}

	db, err := New(dbPath)
	if err != nil {
		return nil, err
	}

	for _, table := range tables {
		if err := db.createTable(table); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// migrate creates the necessary tables if they don't exist.
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dataset_tables (
		name TEXT PRIMARY KEY,
		columns TEXT NOT NULL,
		codec TEXT NOT NULL,
		level INTEGER NOT NULL,
		row_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS blocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		table_name TEXT NOT NULL,
		batch_id TEXT NOT NULL,
		first_row INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (table_name) REFERENCES dataset_tables(name) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS chunks (
		block_id INTEGER NOT NULL,
		column_index INTEGER NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (block_id, column_index),
		FOREIGN KEY (block_id) REFERENCES blocks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_blocks_table_name ON blocks(table_name);
	CREATE INDEX IF NOT EXISTS idx_blocks_batch_id ON blocks(batch_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

func (db *DB) createTable(table model.TableSchema) error {
	db.Lock()
	defer db.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO dataset_tables (name, columns, codec, level)
		VALUES (?, ?, ?, ?)
	`, table.Name, strings.Join(table.Columns, ","), Codec, CompressionLevel)
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

// Close checkpoints the WAL into the main file and closes the connection.
func (db *DB) Close() error {
	db.Lock()
	defer db.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true

	if _, err := db.conn.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		db.conn.Close()
		return fmt.Errorf("failed to checkpoint: %w", err)
	}
	return db.conn.Close()
}

// Path is the dataset file location.
func (db *DB) Path() string {
	return db.path
}

// Conn returns the underlying database connection for use by repositories.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Lock acquires a write lock.
func (db *DB) Lock() {
	db.mu.Lock()
}

// Unlock releases the write lock.
func (db *DB) Unlock() {
	db.mu.Unlock()
}

// RLock acquires a read lock.
func (db *DB) RLock() {
	db.mu.RLock()
}

// RUnlock releases the read lock.
func (db *DB) RUnlock() {
	db.mu.RUnlock()
}
