package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/service"
)

// Stats returns the dashboard summary for the requester's department.
func Stats(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := service.NewDocumentService(ctx).Stats(ctx, requester(c))
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
