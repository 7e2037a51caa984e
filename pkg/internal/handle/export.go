package handle

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/types"
	"github.com/teczamora/repositorio65/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export streams the filtered listing as an xlsx workbook.
func Export(c *gin.Context) {
	var req types.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()

	f, err := service.NewDocumentService(ctx).Export(ctx, requester(c), &req)
	if err != nil {
		writeError(c, err)

		return
	}
	defer f.Close()

	filename := fmt.Sprintf("documentos-%s.xlsx", time.Now().Format("20060102"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Logger().Error().Err(err).Msg("export write failed")
	}
}
