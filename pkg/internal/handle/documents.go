package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

// List returns the filtered, paginated document listing for the
// requester's department.
func List(c *gin.Context) {
	var req types.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx := c.Request.Context()

	resp, err := service.NewDocumentService(ctx).List(ctx, requester(c), &req)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// History returns every version ever stored for one fraction.
func History(c *gin.Context) {
	fractionID, ok := parseID(c, "fractionID")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	docs, err := service.NewDocumentService(ctx).History(ctx, requester(c), fractionID)
	if err != nil {
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs, "total": len(docs)})
}

// Fractions lists the catalog entries the requester may upload to.
func Fractions(c *gin.Context) {
	ctx := c.Request.Context()

	fractions, err := service.NewDocumentService(ctx).PermittedFractions(ctx, requester(c))
	if err != nil {
		writeError(c, err)

		return
	}

	out := make([]types.FractionResponse, 0, len(fractions))
	for _, f := range fractions {
		out = append(out, types.FractionResponse{
			ID:         f.ID,
			Number:     f.Number,
			Name:       f.Name,
			Department: string(f.Department),
		})
	}

	c.JSON(http.StatusOK, gin.H{"fractions": out})
}
