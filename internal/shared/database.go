package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenHistory opens the local history database described by the Storage
// section of the config and applies its pool limits. Use ":memory:" as
// the path for a throwaway database.
func OpenHistory(storage StorageConfig) (*sql.DB, error) {
	db, err := openSQLite(storage.HistoryPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(storage.MaxOpenConns)
	db.SetMaxIdleConns(storage.MaxIdleConns)
	return db, nil
}

// NewDatabase opens a SQLite database at path with default pool settings.
func NewDatabase(path string) (*sql.DB, error) {
	return openSQLite(path)
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
