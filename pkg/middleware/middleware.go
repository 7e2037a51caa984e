// Package middleware provides the gin middleware chain: request logging,
// CORS, request IDs, metrics, requester resolution, rate limiting and
// circuit breaking for the public endpoints.
package middleware
