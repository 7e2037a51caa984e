// Package router binds URL paths to handlers. It owns no handler logic:
// pkg/internal/handle provides the implementations, this package decides
// where they live and which route-level middleware wraps them.
package router
