package tenantdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectShared opens a pool with no tenant session context for control-plane
// tables such as the tenant directory. Those tables carry no
// row-level-security policies; everything tenant-owned must go through a
// Manager session instead.
func ConnectShared(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.connString())
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePoolConfig, err)
	}
	pc.MaxConns = maxConnsPerTenant
	pc.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePoolConfig, err)
	}

	// Control-plane queries run during request handling; catch credential
	// and reachability problems at startup rather than on first request.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrHealthcheckFailed, err)
	}
	return pool, nil
}
