package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/estimo/internal/db"
)

// FailOnNthExec wraps conn so that the Nth ExecContext call returns err.
// Calls are counted starting at 1; a failOn of 1 fails the first write.
// QueryContext and QueryRowContext pass through untouched.
func FailOnNthExec(conn db.DBTX, failOn int32, err error) db.DBTX {
	return &failOnNthExec{DBTX: conn, failOn: failOn, err: err}
}

type failOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
