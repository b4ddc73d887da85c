package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx so the same
// repository code runs standalone or inside a unit of work.
type queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// newID returns a fresh ULID for append-only records. ULIDs sort by creation
// time, which keeps the audit tables naturally ordered.
func newID() string {
	return ulid.Make().String()
}
