// Package storage aggregates the storage clients: relational database,
// blob backend and key-value cache.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//		// handle error
//	}
//
//	dbClient := mgr.GetDBClient()
//	blobClient := mgr.GetBlobClient()
package storage

import (
	"context"
	"sync"

	"github.com/teczamora/repositorio65/pkg/configs"
	blobc "github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	dbc "github.com/teczamora/repositorio65/pkg/internal/storage/db"
	kvc "github.com/teczamora/repositorio65/pkg/internal/storage/kv"
	nlog "github.com/teczamora/repositorio65/pkg/log"
)

// Manager aggregates all storage resources.
type Manager struct {
	DB   *dbc.Client
	Blob *blobc.Client
	KV   *kvc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init initializes the default storage from global configuration. Repeated
// calls return the already-initialized instance.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		if dbi, e := dbc.New(ctx, &cfg.DB); e != nil {
			err = e

			return
		} else {
			m.DB = dbi
		}

		if bi, e := blobc.New(ctx, &cfg.Blob); e != nil {
			err = e

			return
		} else {
			m.Blob = bi
		}

		if ki, e := kvc.New(ctx, &cfg.KV); e != nil {
			err = e

			return
		} else {
			m.KV = ki
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// NewManager builds a Manager from already-constructed clients. Used by
// tests and tooling that bypass global configuration.
func NewManager(db *dbc.Client, blob *blobc.Client, kv *kvc.Client) *Manager {
	return &Manager{DB: db, Blob: blob, KV: kv}
}

// GetDBClient returns the relational database client.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetBlobClient returns the blob backend client.
func (m *Manager) GetBlobClient() *blobc.Client {
	return m.Blob
}

// GetKVClient returns the key-value client.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}
