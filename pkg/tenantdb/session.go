package tenantdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
)

// execer is the slice of pgxpool.Conn needed to configure a session, kept
// narrow so session setup can be exercised without a live database.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// sessionCommands returns the SQL issued on every checkout, in order. With
// RLS enabled the session turns row security on and binds app.tenant_id, the
// variable the database's row-level-security policies read. With RLS disabled
// the session turns row security off and no tenant variable is set.
func sessionCommands(tenantID string, disableRLS bool) []string {
	if disableRLS {
		return []string{"SET row_security = off"}
	}
	return []string{
		"SET row_security = on",
		"SET app.tenant_id = " + quoteLiteral(tenantID),
	}
}

// configureSession runs the session commands sequentially. Commands must all
// complete before the caller's callback sees the connection; a failure on any
// of them aborts the checkout.
func configureSession(ctx context.Context, conn execer, tenantID string, disableRLS bool) error {
	for _, cmd := range sessionCommands(tenantID, disableRLS) {
		if _, err := conn.Exec(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}
