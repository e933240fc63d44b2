package facturas_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/backend/internal/facturas"
	"github.com/facturio/backend/pkg/tenant"
)

type stubService struct {
	facturas map[string][]facturas.Factura
	err      error

	gotTenantID string
}

func (s *stubService) List(_ context.Context, tenantID string) ([]facturas.Factura, error) {
	s.gotTenantID = tenantID
	if s.err != nil {
		return nil, s.err
	}
	return s.facturas[tenantID], nil
}

func (s *stubService) ListPending(_ context.Context, tenantID string) ([]facturas.Factura, error) {
	s.gotTenantID = tenantID
	if s.err != nil {
		return nil, s.err
	}
	var out []facturas.Factura
	for _, f := range s.facturas[tenantID] {
		if f.Status != facturas.StatusPaid {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *stubService) Get(_ context.Context, tenantID string, id uuid.UUID) (facturas.Factura, error) {
	s.gotTenantID = tenantID
	if s.err != nil {
		return facturas.Factura{}, s.err
	}
	for _, f := range s.facturas[tenantID] {
		if f.ID == id {
			return f, nil
		}
	}
	return facturas.Factura{}, facturas.ErrNotFound
}

func (s *stubService) MarkPaid(_ context.Context, tenantID string, id uuid.UUID) (facturas.Factura, error) {
	s.gotTenantID = tenantID
	if s.err != nil {
		return facturas.Factura{}, s.err
	}
	for _, f := range s.facturas[tenantID] {
		if f.ID == id {
			if f.Status == facturas.StatusPaid {
				return facturas.Factura{}, facturas.ErrAlreadyPaid
			}
			f.Status = facturas.StatusPaid
			return f, nil
		}
	}
	return facturas.Factura{}, facturas.ErrNotFound
}

func newFactura(status facturas.Status) facturas.Factura {
	return facturas.Factura{
		ID:           uuid.New(),
		Series:       "F001",
		Number:       42,
		CustomerRUC:  "20123456789",
		CustomerName: "Comercial Andina SAC",
		AmountCents:  125000,
		Currency:     "PEN",
		Status:       status,
		IssuedAt:     time.Now().Add(-72 * time.Hour),
		DueDate:      time.Now().Add(72 * time.Hour),
	}
}

func doRequest(t *testing.T, svc facturas.Service, method, path, tenantID string) *httptest.ResponseRecorder {
	t.Helper()

	h := facturas.NewHandler(svc, nil)
	req := httptest.NewRequest(method, path, nil)
	if tenantID != "" {
		req = req.WithContext(tenant.WithTenant(req.Context(), &tenant.Tenant{ID: tenantID, Active: true}))
	}
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func TestHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("returns tenant invoices", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{facturas: map[string][]facturas.Factura{
			"acme": {newFactura(facturas.StatusPending), newFactura(facturas.StatusPaid)},
		}}

		rec := doRequest(t, svc, "GET", "/facturas", "acme")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "acme", svc.gotTenantID)
		assert.Len(t, decodeData[[]facturas.Factura](t, rec), 2)
	})

	t.Run("requires tenant context", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, &stubService{}, "GET", "/facturas", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service failure maps to 500", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, &stubService{err: errors.New("boom")}, "GET", "/facturas", "acme")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal_error")
	})
}

func TestHandler_ListPending(t *testing.T) {
	t.Parallel()

	svc := &stubService{facturas: map[string][]facturas.Factura{
		"acme": {
			newFactura(facturas.StatusPending),
			newFactura(facturas.StatusOverdue),
			newFactura(facturas.StatusPaid),
		},
	}}

	rec := doRequest(t, svc, "GET", "/facturas-pendientes", "acme")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[[]facturas.Factura](t, rec)
	require.Len(t, got, 2)
	for _, f := range got {
		assert.NotEqual(t, facturas.StatusPaid, f.Status)
	}
}

func TestHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns invoice by id", func(t *testing.T) {
		t.Parallel()

		f := newFactura(facturas.StatusPending)
		svc := &stubService{facturas: map[string][]facturas.Factura{"acme": {f}}}

		rec := doRequest(t, svc, "GET", "/facturas/"+f.ID.String(), "acme")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, f.ID, decodeData[facturas.Factura](t, rec).ID)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		t.Parallel()

		svc := &stubService{facturas: map[string][]facturas.Factura{}}
		rec := doRequest(t, svc, "GET", "/facturas/"+uuid.NewString(), "acme")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, &stubService{}, "GET", "/facturas/not-a-uuid", "acme")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_MarkPaid(t *testing.T) {
	t.Parallel()

	t.Run("marks pending invoice paid", func(t *testing.T) {
		t.Parallel()

		f := newFactura(facturas.StatusPending)
		svc := &stubService{facturas: map[string][]facturas.Factura{"acme": {f}}}

		rec := doRequest(t, svc, "POST", "/facturas/"+f.ID.String()+"/pay", "acme")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, facturas.StatusPaid, decodeData[facturas.Factura](t, rec).Status)
	})

	t.Run("paying twice returns 409", func(t *testing.T) {
		t.Parallel()

		f := newFactura(facturas.StatusPaid)
		svc := &stubService{facturas: map[string][]facturas.Factura{"acme": {f}}}

		rec := doRequest(t, svc, "POST", "/facturas/"+f.ID.String()+"/pay", "acme")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already_paid")
	})
}
