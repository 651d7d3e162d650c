package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"homeprice/service"
)

// Store is the SQLite log of served estimates.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the estimate log at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers; one connection avoids "database is locked".
	database.SetMaxOpenConns(1)

	query := `
    CREATE TABLE IF NOT EXISTS estimates (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        location TEXT NOT NULL,
        total_sqft REAL NOT NULL,
        bath INTEGER NOT NULL,
        bhk INTEGER NOT NULL,
        price REAL NOT NULL,
        unit TEXT NOT NULL,
        display TEXT NOT NULL,
        location_matched BOOLEAN NOT NULL,
        created_at DATETIME NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates(created_at);
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: database}, nil
}

func (s *Store) Record(ctx context.Context, q service.Quote) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO estimates (
            location, total_sqft, bath, bhk, price, unit, display, location_matched, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Location, q.TotalSqft, q.Bath, q.BHK, q.Price, q.Unit, q.Display, q.LocationMatched, q.CreatedAt)
	return err
}

// Recent returns up to limit quotes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]service.Quote, error) {
	if limit <= 0 {
		return []service.Quote{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT location, total_sqft, bath, bhk, price, unit, display, location_matched, created_at
        FROM estimates
        ORDER BY created_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]service.Quote, 0)
	for rows.Next() {
		var q service.Quote
		if err := rows.Scan(&q.Location, &q.TotalSqft, &q.Bath, &q.BHK, &q.Price,
			&q.Unit, &q.Display, &q.LocationMatched, &q.CreatedAt); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
