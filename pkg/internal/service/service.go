// Package service implements the document pipeline: classification
// validation, version allocation, atomic batch uploads, content serving
// with access recording, listings and exports. Services hold no HTTP
// concerns; handlers translate between gin and this package.
package service

import (
	"context"

	"github.com/teczamora/repositorio65/pkg/cache"
	ctxPkg "github.com/teczamora/repositorio65/pkg/context"
	"github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	"github.com/teczamora/repositorio65/pkg/internal/storage/db"
	"github.com/teczamora/repositorio65/pkg/internal/storage/kv"
	nlog "github.com/teczamora/repositorio65/pkg/log"
)

// DocumentService owns the upload and read paths of the repository.
type DocumentService struct {
	dbClient   *db.Client
	blobClient *blob.Client
	kvClient   *kv.Client
	cache      *cache.Cache
}

// NewDocumentService pulls its dependencies from the context. The storage
// middleware (or job/test bootstrap) must have injected the manager first;
// a missing client is a wiring bug, not a runtime condition.
func NewDocumentService(c context.Context) *DocumentService {
	dbc := ctxPkg.GetDBClient(c)
	blc := ctxPkg.GetBlobClient(c)
	kvc := ctxPkg.GetKVClient(c)

	if dbc == nil || dbc.DB == nil || blc == nil || kvc == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &DocumentService{
		dbClient:   dbc,
		blobClient: blc,
		kvClient:   kvc,
		cache:      cache.NewCache(kvc.KVStore),
	}
}
