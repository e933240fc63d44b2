package facturas

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/facturio/backend/pkg/tenantdb"
)

var (
	// ErrNotFound is returned when no invoice matches. RLS makes another
	// tenant's invoice indistinguishable from a missing one.
	ErrNotFound = errors.New("factura not found")

	// ErrAlreadyPaid is returned when marking a paid invoice paid again.
	ErrAlreadyPaid = errors.New("factura is already paid")
)

const selectColumns = `id, series, number, customer_ruc, customer_name,
	amount_cents, currency, status, issued_at, due_date, paid_at`

// Repository persists invoices through tenant-scoped sessions. Methods take
// the tenant ID explicitly so the data layer never has to guess where the
// request scope came from.
type Repository struct {
	db *tenantdb.Manager
}

func NewRepository(db *tenantdb.Manager) *Repository {
	return &Repository{db: db}
}

// List returns the tenant's invoices, newest first.
func (r *Repository) List(ctx context.Context, tenantID string) ([]Factura, error) {
	return tenantdb.Query[Factura](ctx, r.db, tenantID,
		`SELECT `+selectColumns+` FROM facturas ORDER BY issued_at DESC`)
}

// ListPending returns unpaid invoices ordered by due date, soonest first.
// Overdue invoices are included; they are still awaiting payment.
func (r *Repository) ListPending(ctx context.Context, tenantID string) ([]Factura, error) {
	return tenantdb.Query[Factura](ctx, r.db, tenantID,
		`SELECT `+selectColumns+` FROM facturas
		 WHERE status IN ($1, $2)
		 ORDER BY due_date ASC`,
		StatusPending, StatusOverdue)
}

// Get returns one invoice by ID.
func (r *Repository) Get(ctx context.Context, tenantID string, id uuid.UUID) (Factura, error) {
	f, err := tenantdb.QueryOne[Factura](ctx, r.db, tenantID,
		`SELECT `+selectColumns+` FROM facturas WHERE id = $1`, id)
	if err != nil {
		if tenantdb.IsNotFoundError(err) {
			return Factura{}, errors.Join(ErrNotFound, err)
		}
		return Factura{}, err
	}
	return f, nil
}

// MarkPaid transitions an invoice to paid and returns the updated row.
// Paying an already-paid invoice returns ErrAlreadyPaid.
func (r *Repository) MarkPaid(ctx context.Context, tenantID string, id uuid.UUID) (Factura, error) {
	f, err := tenantdb.QueryOne[Factura](ctx, r.db, tenantID,
		`UPDATE facturas
		 SET status = $1, paid_at = now()
		 WHERE id = $2 AND status <> $1
		 RETURNING `+selectColumns,
		StatusPaid, id)
	if err != nil {
		if tenantdb.IsNotFoundError(err) {
			// Distinguish missing from already-paid with a second lookup.
			if _, getErr := r.Get(ctx, tenantID, id); getErr == nil {
				return Factura{}, ErrAlreadyPaid
			}
			return Factura{}, errors.Join(ErrNotFound, err)
		}
		return Factura{}, err
	}
	return f, nil
}
