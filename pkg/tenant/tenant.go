package tenant

import (
	"context"
	"time"
)

// Tenant represents a customer organization with the minimal information
// needed for request-scoped operations. The ID is the opaque identifier used
// as the row-level-security context for every database session opened on the
// tenant's behalf.
type Tenant struct {
	ID        string    `json:"id" db:"id"`
	Subdomain string    `json:"subdomain" db:"subdomain"`
	Name      string    `json:"name" db:"name"`
	PlanID    string    `json:"plan_id" db:"plan_id"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Provider loads tenant information from a data source.
// Implementations should handle both the canonical ID and the subdomain form.
type Provider interface {
	// GetByIdentifier retrieves a tenant using any unique identifier.
	// Returns ErrTenantNotFound if no tenant matches.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
