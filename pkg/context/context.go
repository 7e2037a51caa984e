// Package context carries application-scoped resources (storage manager,
// requester identity) through context.Context.
package context

import (
	"context"

	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/storage"
	blobc "github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	dbc "github.com/teczamora/repositorio65/pkg/internal/storage/db"
	kvc "github.com/teczamora/repositorio65/pkg/internal/storage/kv"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	RequesterKey      ContextKey = "requester"
)

// WithStorageManager stores the Manager in the context.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager retrieves the Manager from the context.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetDBClient retrieves the database client from the context.
func GetDBClient(ctx context.Context) *dbc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetDBClient()
	}

	return nil
}

// GetBlobClient retrieves the blob client from the context.
func GetBlobClient(ctx context.Context) *blobc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetBlobClient()
	}

	return nil
}

// GetKVClient retrieves the KV client from the context.
func GetKVClient(ctx context.Context) *kvc.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetKVClient()
	}

	return nil
}

// WithRequester stores the resolved requester profile in the context.
// A nil profile means the request is anonymous/public.
func WithRequester(ctx context.Context, p *model.UserProfile) context.Context {
	return context.WithValue(ctx, RequesterKey, p)
}

// GetRequester retrieves the requester profile, or nil for anonymous access.
func GetRequester(ctx context.Context) *model.UserProfile {
	if p, ok := ctx.Value(RequesterKey).(*model.UserProfile); ok {
		return p
	}

	return nil
}
