package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/trestle/internal/db"
)

// FailOnNthExecUoW injects Err on the FailOn-th write inside a transaction,
// counting from 1. Reads are never counted, so FailOn addresses the Nth
// INSERT/UPDATE/DELETE of a use case: a rollback test picks the write it
// wants to break and checks that none of the earlier ones survived.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	execs atomic.Int32
}

var _ db.UnitOfWork = (*FailOnNthExecUoW)(nil)

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.RunTx(ctx, u.DB, u.wrap, fn, true)
}

func (u *FailOnNthExecUoW) Snapshot(ctx context.Context, fn db.TxFunc) error {
	return db.RunTx(ctx, u.DB, u.wrap, fn, false)
}

// Execs reports how many writes were attempted, the failing one included.
func (u *FailOnNthExecUoW) Execs() int {
	return int(u.execs.Load())
}

func (u *FailOnNthExecUoW) wrap(tx *sql.Tx) db.DBTX {
	return &countingTx{DBTX: tx, uow: u}
}

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.uow.execs.Add(1) == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
