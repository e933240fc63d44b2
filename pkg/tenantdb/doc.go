// Package tenantdb provides tenant-isolated PostgreSQL access on top of the
// pgx/v5 driver. Every tenant gets its own connection pool, and every checked
// out connection is configured with the tenant's row-level-security context
// before caller code ever sees it, so a query can only touch the rows the
// database's RLS policies allow for that tenant.
//
// # Architecture
//
// The package is built around three cooperating pieces:
//
//   - Config – a declarative struct populated from environment variables via
//     github.com/caarlos0/env. All tenants share one physical database and
//     one set of credentials; isolation happens at the session level.
//
//   - Manager – a concurrency-safe registry mapping tenant identifiers to
//     *pgxpool.Pool. Pools are created lazily on first use and closed via
//     ClosePool, Close, or the optional idle-eviction janitor.
//
//   - WithSession – scoped acquisition. It checks out one connection, issues
//     `SET row_security = on` and `SET app.tenant_id = '...'`, runs the
//     caller's callback, and releases the connection on every exit path.
//
// # Usage
//
//	var cfg tenantdb.Config
//	config.MustLoad(&cfg)
//
//	m := tenantdb.NewManager(cfg, tenantdb.WithLogger(log))
//	defer m.Close()
//
//	invoices, err := tenantdb.Query[Invoice](ctx, m, tenantID,
//		"SELECT id, amount FROM facturas WHERE status = $1", "pending")
//
// Lower-level access goes through WithSession directly:
//
//	err := m.WithSession(ctx, tenantID, func(ctx context.Context, conn *pgxpool.Conn) error {
//		_, err := conn.Exec(ctx, "UPDATE facturas SET status = 'paid' WHERE id = $1", id)
//		return err
//	})
//
// # Security model
//
// Tenant identifiers are validated against a strict allow-list before use and
// additionally quote-escaped when interpolated into the SET command (SET does
// not accept bind parameters). The DB_DISABLE_RLS flag turns row security off
// for every session and exists for local development only; setting it in a
// shared environment removes tenant isolation entirely.
//
// # Concurrency
//
// The registry is mutated only under the Manager's mutex, so concurrent
// first-time requests for the same tenant always converge on a single pool.
// Sessions for the same tenant run concurrently, each on its own connection.
// Acquisition waits at most 10 seconds for a free connection; callbacks are
// bounded only by the caller's context.
//
// # Error handling
//
// All caller-triggered failures (acquire timeout, session setup, callback
// errors) are propagated after the connection is released, wrapped with the
// package's sentinel errors where classification helps. Asynchronous backend
// errors on idle connections are logged and never surface to a caller.
package tenantdb
