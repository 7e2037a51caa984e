package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/teczamora/repositorio65/pkg/internal/handle"
)

// RegisterDocumentRoutes binds the authenticated document surface:
//
//	POST /documents                     upload batch
//	GET  /documents                     filtered listing
//	GET  /documents/export.xlsx         spreadsheet export
//	GET  /documents/history/:fractionID full version trail
//	GET  /documents/:id/view            inline serve
//	GET  /documents/:id/download        attachment serve
//	GET  /fractions                     permitted catalog
//	GET  /stats                         dashboard summary
func RegisterDocumentRoutes(g *gin.RouterGroup) {
	documents := g.Group("/documents")
	{
		documents.POST("", handle.Upload)

		// Listing, export and stats compress well; content serves do not.
		compressed := documents.Group("", gzip.Gzip(gzip.DefaultCompression))
		{
			compressed.GET("", handle.List)
			compressed.GET("/export.xlsx", handle.Export)
			compressed.GET("/history/:fractionID", handle.History)
		}

		single := documents.Group("/:id")
		{
			single.GET("/view", handle.View)
			single.GET("/download", handle.Download)
		}
	}

	g.GET("/fractions", gzip.Gzip(gzip.DefaultCompression), handle.Fractions)
	g.GET("/stats", gzip.Gzip(gzip.DefaultCompression), handle.Stats)
}
