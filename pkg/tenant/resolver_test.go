package tenant_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/backend/pkg/tenant"
)

func TestHeaderResolver(t *testing.T) {
	t.Parallel()

	t.Run("reads configured header", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewHeaderResolver("X-Tenant-ID")
		req := httptest.NewRequest("GET", "/api/facturas", nil)
		req.Header.Set("X-Tenant-ID", "acme")

		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("defaults to X-Tenant-ID", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewHeaderResolver("")
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Tenant-ID", "globex")

		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "globex", id)
	})

	t.Run("empty when header absent", func(t *testing.T) {
		t.Parallel()

		r := tenant.NewHeaderResolver("")
		id, err := r.Resolve(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		suffix string
		host   string
		want   string
	}{
		{"with suffix", ".facturio.app", "acme.facturio.app", "acme"},
		{"with suffix and port", ".facturio.app", "acme.facturio.app:8443", "acme"},
		{"host not under suffix", ".facturio.app", "acme.other.app", ""},
		{"bare domain", "", "facturio.app", ""},
		{"www is not a tenant", ".facturio.app", "www.facturio.app", ""},
		{"no suffix three parts", "", "acme.facturio.app", "acme"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := tenant.NewSubdomainResolver(tc.suffix)
			req := httptest.NewRequest("GET", "/", nil)
			req.Host = tc.host

			id, err := r.Resolve(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	r := tenant.NewCompositeResolver(
		tenant.NewHeaderResolver(""),
		tenant.NewSubdomainResolver(".facturio.app"),
	)

	t.Run("header wins", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Host = "globex.facturio.app"
		req.Header.Set("X-Tenant-ID", "acme")

		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", id)
	})

	t.Run("falls back to subdomain", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Host = "globex.facturio.app"

		id, err := r.Resolve(req)
		require.NoError(t, err)
		assert.Equal(t, "globex", id)
	})
}
