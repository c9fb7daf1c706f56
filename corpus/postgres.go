package corpus

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/use-agent/scout/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS staged_products (
	position    INTEGER PRIMARY KEY,
	title       TEXT NOT NULL UNIQUE,
	price       DOUBLE PRECISION NOT NULL,
	image       TEXT NOT NULL,
	description TEXT NOT NULL,
	category    TEXT NOT NULL,
	staged_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var stagedColumns = []string{"position", "title", "price", "image", "description", "category"}

// PostgresStore stages the corpus in a Postgres table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and ensures the staging table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("corpus: parse postgres dsn: %w", err)
	}
	poolConfig.MaxConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("corpus: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("corpus: ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("corpus: create postgres schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Load returns the staged records in corpus order.
func (s *PostgresStore) Load(ctx context.Context) ([]models.ScrapedProduct, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT title, price, image, description, category FROM staged_products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("corpus: query staged products: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ScrapedProduct, error) {
		var p models.ScrapedProduct
		err := row.Scan(&p.Title, &p.Price, &p.Image, &p.Description, &p.Category)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("corpus: scan staged products: %w", err)
	}
	if records == nil {
		records = []models.ScrapedProduct{}
	}
	return records, nil
}

// Save replaces the staged records inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, records []models.ScrapedProduct) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM staged_products`); err != nil {
			return fmt.Errorf("corpus: clear staged products: %w", err)
		}
		rows := make([][]any, len(records))
		for i, p := range records {
			rows[i] = []any{int32(i), p.Title, p.Price, p.Image, p.Description, p.Category}
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"staged_products"}, stagedColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("corpus: copy staged products: %w", err)
		}
		return nil
	})
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
