// Package facturas implements the invoice API backing the dashboard: listing
// a tenant's invoices, filtering pending ones, and marking invoices paid.
// Every query runs through a tenant-scoped database session, so row-level
// security is what ultimately keeps one tenant's invoices out of another's
// responses.
package facturas

import (
	"time"

	"github.com/google/uuid"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusPending Status = "pendiente"
	StatusPaid    Status = "pagada"
	StatusOverdue Status = "vencida"
)

// Factura is an issued invoice. Amounts are stored in cents to keep the math
// exact; the frontend formats them.
type Factura struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Series       string     `json:"series" db:"series"`
	Number       int        `json:"number" db:"number"`
	CustomerRUC  string     `json:"customer_ruc" db:"customer_ruc"`
	CustomerName string     `json:"customer_name" db:"customer_name"`
	AmountCents  int64      `json:"amount_cents" db:"amount_cents"`
	Currency     string     `json:"currency" db:"currency"`
	Status       Status     `json:"status" db:"status"`
	IssuedAt     time.Time  `json:"issued_at" db:"issued_at"`
	DueDate      time.Time  `json:"due_date" db:"due_date"`
	PaidAt       *time.Time `json:"paid_at,omitempty" db:"paid_at"`
}
