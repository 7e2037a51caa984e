package handle

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/service"
)

// View streams a document inline for the authenticated surface.
func View(c *gin.Context) {
	serveContent(c, false, false)
}

// Download streams a document as an attachment.
func Download(c *gin.Context) {
	serveContent(c, false, true)
}

// PublicView streams a document inline without authentication.
func PublicView(c *gin.Context) {
	serveContent(c, true, false)
}

// PublicDownload streams a document as an attachment without authentication.
func PublicDownload(c *gin.Context) {
	serveContent(c, true, true)
}

func serveContent(c *gin.Context, public, download bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	svc := service.NewDocumentService(ctx)

	var (
		result *service.ServeResult
		err    error
	)

	if public {
		result, err = svc.ServePublic(ctx, id, accessMeta(c))
	} else {
		result, err = svc.Serve(ctx, id, requester(c), accessMeta(c))
	}

	if err != nil {
		writeError(c, err)

		return
	}
	defer result.Content.Close()

	disposition := "inline"
	if download {
		disposition = "attachment"
	}

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("%s; filename=%q", disposition, result.Document.OriginalName),
	}

	c.DataFromReader(http.StatusOK, result.Document.Size, result.ContentType, result.Content, headers)
}
