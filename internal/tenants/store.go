// Package tenants implements the tenant directory: the control-plane table
// mapping tenant identifiers and subdomains to tenant records. It backs the
// tenant middleware's Provider interface.
package tenants

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facturio/backend/pkg/tenant"
	"github.com/facturio/backend/pkg/tenantdb"
)

// Store reads tenant records from the shared (non-tenant-scoped) pool.
// The tenants table has no row-level-security policies; it is the one place
// that must be readable before any tenant context exists.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// GetByIdentifier implements tenant.Provider. The identifier may be the
// canonical tenant ID or the subdomain; both are unique.
func (s *Store) GetByIdentifier(ctx context.Context, identifier string) (*tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, subdomain, name, plan_id, active, created_at
		 FROM tenants
		 WHERE id = $1 OR subdomain = $1`,
		identifier,
	)
	if err != nil {
		return nil, err
	}

	t, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tenant.Tenant])
	if err != nil {
		if tenantdb.IsNotFoundError(err) {
			return nil, errors.Join(tenant.ErrTenantNotFound, err)
		}
		return nil, err
	}
	return &t, nil
}
