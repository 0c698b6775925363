package db

import (
	"context"
	"database/sql"
	"fmt"
)

// DBTX is what repositories run queries against: the pool itself or an
// open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a transaction. Repositories built from tx see the
// transaction's view of the database.
type TxFunc func(ctx context.Context, tx DBTX) error

// UnitOfWork scopes a group of repository calls to one transaction.
type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn TxFunc) error
	// Snapshot runs fn against a consistent view and always rolls back.
	// Reads that combine items with dependencies go through it so a
	// concurrent edit cannot split them.
	Snapshot(ctx context.Context, fn TxFunc) error
}

// SQLiteUnitOfWork implements UnitOfWork with database/sql transactions.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn TxFunc) error {
	return RunTx(ctx, u.db, func(tx *sql.Tx) DBTX { return tx }, fn, true)
}

func (u *SQLiteUnitOfWork) Snapshot(ctx context.Context, fn TxFunc) error {
	return RunTx(ctx, u.db, func(tx *sql.Tx) DBTX { return tx }, fn, false)
}

// RunTx begins a transaction on database, hands fn the DBTX produced by
// wrap, and commits only when commit is set and fn succeeded. A panic in
// fn rolls back before propagating.
func RunTx(ctx context.Context, database *sql.DB, wrap func(*sql.Tx) DBTX, fn TxFunc, commit bool) (err error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, wrap(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if !commit {
		return tx.Rollback()
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
