// Package redis provides helpers for connecting to a Redis server: a Connect
// function with retry bounded by a configurable timeout, an env-tagged Config
// struct, and a health-check closure for liveness probes.
//
// The API instances use Redis for the shared tenant lookup cache (see
// tenant.NewRedisCache); the helpers here only own connection setup.
package redis
