package corpus

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/use-agent/scout/models"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS staged_products (
	"position"    INTEGER NOT NULL PRIMARY KEY,
	"title"       TEXT NOT NULL UNIQUE,
	"price"       REAL NOT NULL,
	"image"       TEXT NOT NULL,
	"description" TEXT NOT NULL,
	"category"    TEXT NOT NULL
);`

// SQLiteStore stages the corpus in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the
// staging table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open sqlite %s: %w", path, err)
	}
	// One connection keeps writes serialised inside this process.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus: ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("corpus: create sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load returns the staged records in corpus order.
func (s *SQLiteStore) Load(ctx context.Context) ([]models.ScrapedProduct, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, price, image, description, category FROM staged_products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("corpus: query staged products: %w", err)
	}
	defer rows.Close()

	records := []models.ScrapedProduct{}
	for rows.Next() {
		var p models.ScrapedProduct
		if err := rows.Scan(&p.Title, &p.Price, &p.Image, &p.Description, &p.Category); err != nil {
			return nil, fmt.Errorf("corpus: scan staged product: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corpus: iterate staged products: %w", err)
	}
	return records, nil
}

// Save replaces the staged records inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, records []models.ScrapedProduct) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("corpus: begin sqlite tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM staged_products`); err != nil {
		return fmt.Errorf("corpus: clear staged products: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO staged_products (position, title, price, image, description, category) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("corpus: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range records {
		if _, err = stmt.ExecContext(ctx, i, p.Title, p.Price, p.Image, p.Description, p.Category); err != nil {
			return fmt.Errorf("corpus: insert %q: %w", p.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("corpus: commit sqlite tx: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
