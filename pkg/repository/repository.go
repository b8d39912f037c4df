// Package repository provides generic database access helpers shared by
// the domain repositories: scan-based query execution, transaction
// wrapping, and driver error mapping to domain sentinel errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Scanner abstracts sql.Row and sql.Rows for scan functions.
type Scanner interface {
	Scan(dest ...any) error
}

// Querier abstracts sql.DB and sql.Tx for query execution.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// QueryOne executes a query expected to return a single row and scans it
// with the provided scan function.
func QueryOne[T any](ctx context.Context, q Querier, query string, args []any, scan func(Scanner) (T, error)) (T, error) {
	row := q.QueryRowContext(ctx, query, args...)
	return scan(row)
}

// QueryMany executes a query and scans every returned row.
func QueryMany[T any](ctx context.Context, q Querier, query string, args []any, scan func(Scanner) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

// ExecExpectOne executes a statement and returns sql.ErrNoRows when no
// rows were affected.
func ExecExpectOne(ctx context.Context, q Querier, query string, args ...any) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin transaction: %w", err)
	}

	result, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit transaction: %w", err)
	}
	return result, nil
}

// MapError converts driver-level errors to the domain sentinels:
// sql.ErrNoRows maps to notFound, unique violations map to duplicate,
// everything else passes through unchanged.
func MapError(err, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return duplicate
	}
	return err
}
