package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/teczamora/repositorio65/pkg/context"
	"github.com/teczamora/repositorio65/pkg/internal/storage/blob"
)

const healthTimeout = 2 * time.Second

// HealthDB pings the relational database.
func HealthDB(c *gin.Context) {
	dbc := ctxPkg.GetDBClient(c.Request.Context())
	if dbc == nil || dbc.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": "db client not initialized"})

		return
	}

	sqlDB, err := dbc.DB.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})

		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "db", "status": "unhealthy", "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "db", "status": "healthy"})
}

// HealthBlob probes the blob backend with a metadata lookup. An absent key
// is the expected answer from a reachable store.
func HealthBlob(c *gin.Context) {
	blc := ctxPkg.GetBlobClient(c.Request.Context())
	if blc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "blob", "status": "unhealthy", "error": "blob client not initialized"})

		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	if _, err := blc.Stat(ctx, ".healthcheck"); err != nil && !errors.Is(err, blob.ErrNotExist) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "blob", "status": "unhealthy", "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "blob", "status": "healthy"})
}

// HealthKV verifies a write/read roundtrip on the KV store.
func HealthKV(c *gin.Context) {
	kvClient := ctxPkg.GetKVClient(c.Request.Context())
	if kvClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "kv", "status": "unhealthy", "error": "kv client not initialized"})

		return
	}

	ctx, cancel := contextWithTimeout(c)
	defer cancel()

	key := ".healthcheck"
	if err := kvClient.Set(ctx, key, []byte("ok"), time.Minute); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "kv", "status": "unhealthy", "error": err.Error()})

		return
	}

	if _, err := kvClient.Get(ctx, key); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "kv", "status": "unhealthy", "error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "kv", "status": "healthy"})
}

func contextWithTimeout(c *gin.Context) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), healthTimeout)
}
