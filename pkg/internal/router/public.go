package router

import (
	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/handle"
	"github.com/teczamora/repositorio65/pkg/middleware"
)

// RegisterPublicRoutes binds the citizen-facing surface. No authentication
// applies here; the group is shielded by a rate limiter and a circuit
// breaker instead, so a scraping burst degrades this surface before it can
// starve the upload path.
func RegisterPublicRoutes(g *gin.RouterGroup, cfg *configs.AppConfig) {
	public := g.Group("/documents",
		middleware.RateLimitMiddleware(cfg.RateLimit),
		middleware.CircuitBreakerMiddleware(cfg.CircuitBreaker),
	)
	{
		public.GET("/:id/view", handle.PublicView)
		public.GET("/:id/download", handle.PublicDownload)
	}
}
