package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/subtrack/subscription"
)

// Postgres keeps the snapshots in two tables and replaces them inside a
// transaction on every save. Rows carry an explicit position column so loads
// return records in persisted order, matching the file backend.
type Postgres struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS subscriptions (
	position     integer PRIMARY KEY,
	idx          integer NOT NULL UNIQUE,
	client_name  text    NOT NULL,
	product_name text    NOT NULL,
	end_date     date    NOT NULL,
	license_key  text
);
CREATE TABLE IF NOT EXISTS products (
	position integer PRIMARY KEY,
	name     text    NOT NULL UNIQUE
);`

// Connect establishes a pgx pool with retry, verifying the connection with a
// ping. Linear backoff between attempts avoids hammering a database that is
// still starting up alongside the service.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrLoadFailed, lastErr)
}

// NewPostgres creates a Postgres-backed store over an existing pool and
// ensures the schema exists.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: pool is required", ErrLoadFailed)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		return nil, fmt.Errorf("%w: schema: %v", ErrLoadFailed, err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) LoadSubscriptions(ctx context.Context) ([]subscription.Subscription, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT idx, client_name, product_name, end_date, license_key
		 FROM subscriptions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer rows.Close()

	var subs []subscription.Subscription
	for rows.Next() {
		var (
			sub subscription.Subscription
			end time.Time
		)
		if err := rows.Scan(&sub.Index, &sub.ClientName, &sub.ProductName, &end, &sub.LicenseKey); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		sub.EndDate = subscription.DateOf(end)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return subs, nil
}

func (p *Postgres) SaveSubscriptions(ctx context.Context, subs []subscription.Subscription) error {
	return p.replace(ctx, "subscriptions", func(tx pgx.Tx) error {
		for i, sub := range subs {
			_, err := tx.Exec(ctx,
				`INSERT INTO subscriptions (position, idx, client_name, product_name, end_date, license_key)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				i, sub.Index, sub.ClientName, sub.ProductName, sub.EndDate.String(), sub.LicenseKey)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Postgres) LoadProducts(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT name FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer rows.Close()

	var products []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
		}
		products = append(products, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return products, nil
}

func (p *Postgres) SaveProducts(ctx context.Context, products []string) error {
	return p.replace(ctx, "products", func(tx pgx.Tx) error {
		for i, name := range products {
			if _, err := tx.Exec(ctx,
				`INSERT INTO products (position, name) VALUES ($1, $2)`, i, name); err != nil {
				return err
			}
		}
		return nil
	})
}

// replace runs delete-all plus re-insert in one transaction, giving the same
// all-or-nothing snapshot semantics as the file backend's rename.
func (p *Postgres) replace(ctx context.Context, table string, insert func(tx pgx.Tx) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := insert(tx); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Join(ErrSaveFailed, err)
	}
	return nil
}
