// Package store is the PostgreSQL persistence layer for generated fixture
// data. All methods run against a Querier, so a single transaction owned by
// the caller can span every mutating phase of a run.
package store

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx both *pgxpool.Pool and pgx.Tx satisfy.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db Querier
	qb squirrel.StatementBuilderType
}

func New(db Querier) *Store {
	return &Store{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}
