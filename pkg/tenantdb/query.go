package tenantdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Query runs a single parameterized statement in a scoped session and
// collects every row into T. Column names are matched against `db` struct
// tags (falling back to field names), so results are fully materialized
// before the connection goes back to the pool.
func Query[T any](ctx context.Context, m *Manager, tenantID, sql string, args ...any) ([]T, error) {
	var out []T
	err := m.WithSession(ctx, tenantID, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryOne runs a single parameterized statement expected to return exactly
// one row. Returns pgx.ErrNoRows (detectable via IsNotFoundError) when the
// statement matches nothing.
func QueryOne[T any](ctx context.Context, m *Manager, tenantID, sql string, args ...any) (T, error) {
	var out T
	err := m.WithSession(ctx, tenantID, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
		return err
	})
	return out, err
}
