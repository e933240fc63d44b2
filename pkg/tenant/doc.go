// Package tenant provides tenant identity plumbing for multi-tenant HTTP
// services: request-scoped tenant context, identifier resolution from HTTP
// requests, and cached tenant lookups.
//
// # Architecture
//
//   - Tenant / Provider – the tenant record and the interface that loads it
//     from a data source (typically the tenants directory table).
//
//   - Resolver – extracts the tenant identifier from a request. Header,
//     subdomain, and composite resolvers are provided.
//
//   - Middleware – resolves the tenant once per request, validates it, and
//     stores it in the request context, consulting a Cache first. The cache
//     can be the default in-memory TTL/LRU one or Redis-backed so multiple
//     API instances share it.
//
// Downstream code reads the tenant from context:
//
//	t := tenant.MustFromContext(r.Context())
//	facturas, err := repo.List(r.Context(), t.ID)
//
// The tenant ID extracted here is what pkg/tenantdb binds as the
// row-level-security context of every database session.
package tenant
