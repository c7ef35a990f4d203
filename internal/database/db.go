package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with the history-index methods
type DB struct {
	*sql.DB
}

// New opens the history index database
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// Enable WAL mode for better concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS analyses (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        analyzed_at DATETIME NOT NULL,
        filename TEXT NOT NULL,
        target TEXT NOT NULL,
        total_pings INTEGER NOT NULL,
        transmitted INTEGER NOT NULL,
        packet_loss REAL NOT NULL,
        min_rtt_ms REAL,
        avg_rtt_ms REAL,
        max_rtt_ms REAL,
        missing_count INTEGER NOT NULL,
        abnormal_count INTEGER NOT NULL,
        has_timestamps BOOLEAN NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_analyses_time ON analyses(analyzed_at);
    CREATE INDEX IF NOT EXISTS idx_analyses_target ON analyses(target, analyzed_at);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}
