package tenant

import (
	"net/http"
	"strings"
)

// Resolver extracts a tenant identifier from an HTTP request.
type Resolver interface {
	// Resolve extracts the tenant identifier from the request.
	// Returns empty string if no tenant identifier is found.
	Resolve(r *http.Request) (string, error)
}

// HeaderResolver extracts the tenant identifier from an HTTP header.
// This is the resolver the dashboard frontend uses: it sends the tenant
// slug in X-Tenant-ID with every API call.
type HeaderResolver struct {
	HeaderName string
}

// NewHeaderResolver creates a header resolver. Defaults to X-Tenant-ID.
func NewHeaderResolver(headerName string) *HeaderResolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}
	return &HeaderResolver{HeaderName: headerName}
}

func (r *HeaderResolver) Resolve(req *http.Request) (string, error) {
	return req.Header.Get(r.HeaderName), nil
}

// SubdomainResolver extracts the tenant identifier from the request's
// subdomain (e.g. "acme" from "acme.facturio.app").
type SubdomainResolver struct {
	// Suffix is the base domain to strip, e.g. ".facturio.app".
	Suffix string
}

// NewSubdomainResolver creates a subdomain resolver for the given base domain.
func NewSubdomainResolver(suffix string) *SubdomainResolver {
	return &SubdomainResolver{Suffix: suffix}
}

func (r *SubdomainResolver) Resolve(req *http.Request) (string, error) {
	host := req.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if r.Suffix != "" {
		if !strings.HasSuffix(host, r.Suffix) {
			return "", nil
		}
		host = strings.TrimSuffix(host, r.Suffix)
	}

	parts := strings.Split(host, ".")
	if len(parts) == 0 || parts[0] == "" || parts[0] == "www" {
		return "", nil
	}

	// Without a configured suffix, require subdomain.domain.tld to avoid
	// treating the bare domain name as a tenant.
	if r.Suffix == "" && len(parts) < 3 {
		return "", nil
	}

	return parts[0], nil
}

// CompositeResolver tries multiple resolvers in order, returning the first
// non-empty identifier.
type CompositeResolver struct {
	Resolvers []Resolver
}

func NewCompositeResolver(resolvers ...Resolver) *CompositeResolver {
	return &CompositeResolver{Resolvers: resolvers}
}

func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	for _, resolver := range c.Resolvers {
		id, err := resolver.Resolve(r)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}
	return "", nil
}
