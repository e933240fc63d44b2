package tenantdb

import (
	"errors"
	"regexp"
	"strings"
)

// tenantIDPattern is the allow-list for tenant identifiers. Identifiers are
// opaque slugs (UUIDs, subdomains, account codes), so alphanumerics plus
// hyphen and underscore cover every legitimate value while ruling out quote
// characters and whitespace entirely.
var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidateTenantID rejects any identifier that could not have been issued by
// the tenant directory. Validation happens before the identifier gets near a
// SQL command; the escaping below must still hold on its own.
func ValidateTenantID(id string) error {
	if !tenantIDPattern.MatchString(id) {
		return errors.Join(ErrInvalidTenantID, errors.New("must match "+tenantIDPattern.String()))
	}
	return nil
}

// quoteLiteral renders s as a single-quoted SQL string literal with embedded
// quotes doubled. SET does not accept bind parameters, so the tenant context
// command is the one sanctioned exception to parameterized queries in this
// codebase. Keep it that way.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
