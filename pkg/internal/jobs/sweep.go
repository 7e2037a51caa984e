// Package jobs runs background maintenance. The only job today is the
// orphan blob sweep: the upload transaction cleans its own blobs on
// rollback, but a process killed between the blob write and the commit
// leaves content no document row references. The sweep reconciles the blob
// store against the database and deletes such leftovers.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/storage"
	"github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	nlog "github.com/teczamora/repositorio65/pkg/log"
)

const sweepPrefix = "documents/"

// StartSweeper schedules the periodic orphan blob sweep.
func StartSweeper(ctx context.Context, mgr *storage.Manager, cfg configs.JobsConfig) error {
	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	interval := time.Duration(cfg.SweepIntervalMinutes) * time.Minute
	minAge := time.Duration(cfg.SweepMinAgeMinutes) * time.Minute

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n, serr := SweepOrphans(ctx, mgr, minAge); serr != nil {
				nlog.Logger().Error().Err(serr).Msg("orphan sweep failed")
			} else if n > 0 {
				nlog.Logger().Info().Int("deleted", n).Msg("orphan blobs swept")
			}
		}),
		gocron.WithName("blob.orphan_sweep"),
	)
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}

	sched.Start()
	nlog.Logger().Info().Dur("interval", interval).Msg("orphan sweep scheduled")

	return nil
}

// SweepOrphans walks the document prefix of the blob store and deletes
// every blob old enough to not belong to an in-flight upload and unknown
// to the database. It returns the number of deleted blobs.
func SweepOrphans(ctx context.Context, mgr *storage.Manager, minAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-minAge)
	deleted := 0

	err := mgr.GetBlobClient().List(ctx, sweepPrefix, func(info blob.ObjectInfo) error {
		if info.ModTime.After(cutoff) {
			return nil
		}

		var n int64

		err := mgr.GetDBClient().WithContext(ctx).
			Model(&model.Document{}).
			Where("object_key = ?", info.Key).
			Count(&n).Error
		if err != nil {
			return fmt.Errorf("lookup %s: %w", info.Key, err)
		}

		if n > 0 {
			return nil
		}

		if err := mgr.GetBlobClient().Delete(ctx, info.Key); err != nil {
			return fmt.Errorf("delete %s: %w", info.Key, err)
		}

		nlog.Logger().Warn().Str("key", info.Key).Msg("deleted orphan blob")
		deleted++

		return nil
	})
	if err != nil {
		return deleted, err
	}

	return deleted, nil
}
