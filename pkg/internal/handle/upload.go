package handle

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/types"
	"github.com/teczamora/repositorio65/pkg/log"
)

// Upload receives a multipart batch: classification fields plus one or more
// "files" parts. The whole batch commits under a single new version or is
// rejected as a unit.
func Upload(c *gin.Context) {
	var req types.UploadRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Logger().Warn().Err(err).Msg("invalid upload request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})

		return
	}

	payloads := make([]types.Payload, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		payloads = append(payloads, types.Payload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open:     openFileHeader(fh),
		})
	}

	ctx := c.Request.Context()
	svc := service.NewDocumentService(ctx)

	resp, err := svc.Submit(ctx, requester(c), &req, payloads)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

func openFileHeader(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}
