package tenantdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// Healthcheck returns a closure that validates database connectivity for
// health endpoints. It dials a short-lived standalone connection instead of
// going through a tenant pool, so probing never creates registry entries or
// consumes a tenant's connection budget.
func Healthcheck(cfg Config) func(context.Context) error {
	return func(ctx context.Context) error {
		conn, err := pgx.Connect(ctx, cfg.connString())
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer func() { _ = conn.Close(ctx) }()

		if err := conn.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
