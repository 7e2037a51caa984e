package service

import (
	"context"

	"github.com/teczamora/repositorio65/pkg/internal/model"
	nlog "github.com/teczamora/repositorio65/pkg/log"
	"github.com/teczamora/repositorio65/pkg/metrics"
)

// recordAccess appends one immutable access log row. Recording is strictly
// best-effort: a failed insert is logged and counted but never propagated,
// so a broken audit table cannot take the serve path down with it.
func (ds *DocumentService) recordAccess(ctx context.Context, doc *model.Document, requester *model.UserProfile, ip, userAgent string, public bool) {
	entry := model.AccessLog{
		DocumentID: doc.ID,
		IPAddress:  ip,
		UserAgent:  userAgent,
		IsPublic:   public,
	}
	if requester != nil {
		entry.UserProfileID = &requester.ID
	}

	if err := ds.dbClient.WithContext(ctx).Create(&entry).Error; err != nil {
		metrics.AccessLogFailures.Inc()
		nlog.Logger().Warn().Err(err).
			Uint("document_id", doc.ID).
			Bool("public", public).
			Msg("access log write failed, serve continues")
	}
}
