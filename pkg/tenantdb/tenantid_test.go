package tenantdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTenantID(t *testing.T) {
	t.Parallel()

	t.Run("accepts typical identifiers", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{
			"acme",
			"acme-corp",
			"tenant_42",
			"550e8400-e29b-41d4-a716-446655440000",
			"A1",
			"x",
		} {
			assert.NoError(t, ValidateTenantID(id), "expected %q to be valid", id)
		}
	})

	t.Run("rejects malformed identifiers", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{
			"",
			" ",
			"acme corp",
			"acme;drop",
			"o'; DROP TABLE x; --",
			"-leading-hyphen",
			"_leading_underscore",
			"café",
			strings.Repeat("a", 65),
		} {
			err := ValidateTenantID(id)
			require.Error(t, err, "expected %q to be rejected", id)
			assert.ErrorIs(t, err, ErrInvalidTenantID)
		}
	})

	t.Run("accepts maximum length", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateTenantID(strings.Repeat("a", 64)))
	})
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()

	t.Run("wraps plain values in single quotes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "'acme'", quoteLiteral("acme"))
	})

	t.Run("doubles embedded quotes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "'o''brien'", quoteLiteral("o'brien"))
		assert.Equal(t, "''''", quoteLiteral("'"))
	})

	t.Run("injection attempt stays a single literal", func(t *testing.T) {
		t.Parallel()

		quoted := quoteLiteral("o'; DROP TABLE x; --")
		assert.Equal(t, "'o''; DROP TABLE x; --'", quoted)

		// Every quote inside the literal must be doubled, leaving no
		// terminator for a second statement to attach to.
		inner := quoted[1 : len(quoted)-1]
		assert.Equal(t, strings.Count(inner, "''")*2, strings.Count(inner, "'"))
	})
}
