package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/teczamora/repositorio65/pkg/configs"
	ctxPkg "github.com/teczamora/repositorio65/pkg/context"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/log"
)

// AuthMiddleware resolves the requester from the header injected by the
// auth proxy and attaches the matching UserProfile to the request context.
//   - requires the configured user header (default X-Auth-Request-User)
//   - configured path prefixes (public URLs, /metrics, health) are skipped
//   - development mode may fall back to a ?user= query parameter
//
// A missing profile row is a 401: only provisioned staff may enter the
// private surface. A profile without a department passes through; upload
// authorization deals with that case explicitly.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled || isSkippedPath(c.Request.URL.Path, conf.SkipPaths) {
			c.Next()
			return
		}

		username := strings.TrimSpace(c.GetHeader(conf.UserHeader))
		if username == "" && conf.DevAllowQuery {
			username = strings.TrimSpace(c.Query("user"))
		}

		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

			return
		}

		dbClient := ctxPkg.GetDBClient(c.Request.Context())
		if dbClient == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})

			return
		}

		var profile model.UserProfile
		if err := dbClient.WithContext(c.Request.Context()).
			Where("username = ?", username).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})

				return
			}

			log.Logger().Error().Err(err).Str("username", username).Msg("profile lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "profile lookup failed"})

			return
		}

		ctx := ctxPkg.WithRequester(c.Request.Context(), &profile)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func isSkippedPath(path string, skips []string) bool {
	if path == "" || len(skips) == 0 {
		return false
	}

	for _, p := range skips {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
