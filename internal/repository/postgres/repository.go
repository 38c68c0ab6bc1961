// Package postgres implements the settlement ledger on PostgreSQL. Balances
// accumulate from share accounting, payouts reset them, and pending krc-20
// transfers persist across restarts so interrupted reveals can be recovered.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	// Metrics records metrics for ledger operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// Tx is the slice of pgx.Tx the repository needs for atomic
	// payout-and-reset sequences.
	Tx interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DB is the connection surface the repository is written against.
	DB interface {
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Begin(ctx context.Context) (Tx, error)
		Close()
	}
)

// Repository is the ledger store. The pool treasury wallet is excluded from
// miner-facing queries by address.
type Repository struct {
	db          DB
	metrics     Metrics
	poolAddress string
}

// NewRepository opens a pgx pool against the DSN.
func NewRepository(ctx context.Context, dsn, poolAddress string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Repository{db: poolAdapter{pool}, metrics: metrics, poolAddress: poolAddress}, nil
}

// Close releases the underlying pool.
func (r *Repository) Close() {
	r.db.Close()
}

// poolAdapter narrows *pgxpool.Pool to the DB interface; its Begin returns
// the trimmed Tx instead of the full pgx.Tx.
type poolAdapter struct {
	pool *pgxpool.Pool
}

func (p poolAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

func (p poolAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p poolAdapter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p poolAdapter) Begin(ctx context.Context) (Tx, error) {
	return p.pool.Begin(ctx)
}

func (p poolAdapter) Close() {
	p.pool.Close()
}
