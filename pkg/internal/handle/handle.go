// Package handle implements the HTTP request handlers. Handlers bind and
// validate the request, call into the service layer and translate the error
// taxonomy to HTTP statuses; they hold no business logic of their own.
package handle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/teczamora/repositorio65/pkg/context"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/types"
	"github.com/teczamora/repositorio65/pkg/log"
)

// requester returns the profile resolved by the auth middleware, or nil on
// the public surface.
func requester(c *gin.Context) *model.UserProfile {
	return ctxPkg.GetRequester(c.Request.Context())
}

func accessMeta(c *gin.Context) service.AccessMeta {
	return service.AccessMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})

		return 0, false
	}

	return uint(id), true
}

// writeError maps a service error to its HTTP response.
func writeError(c *gin.Context, err error) {
	var batchErr *types.BatchRejectedError
	if errors.As(err, &batchErr) {
		c.JSON(http.StatusBadRequest, types.UploadErrorResponse{
			Error:    "batch rejected",
			Payloads: batchErr.Payloads,
		})

		return
	}

	switch {
	case errors.Is(err, types.ErrInvalidClassification):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, types.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, types.ErrConflict):
		log.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("version conflict")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		log.Logger().Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
