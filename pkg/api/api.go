// Package api assembles the route groups of the service: the authenticated
// department surface under /api/v1, the citizen surface under /public and
// the health probes.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/router"
)

// RegisterGroup mounts every route group on the engine.
func RegisterGroup(e *gin.Engine, cfg *configs.AppConfig) *gin.Engine {
	v1 := e.Group("/api/v1")
	router.RegisterDocumentRoutes(v1)
	router.RegisterHealthCheckRoute(v1)

	router.RegisterPublicRoutes(e.Group("/public"), cfg)

	return e
}
