package router

import (
	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/handle"
)

// RegisterHealthCheckRoute binds the per-component health probes.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("/db", handle.HealthDB)
		healthRoutes.GET("/blob", handle.HealthBlob)
		healthRoutes.GET("/kv", handle.HealthKV)
	}
}
