package service

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teczamora/repositorio65/pkg/internal/model"
)

// allocateVersion runs inside an open transaction. It locks every row of
// the classification key, demotes the current version and returns the next
// version number. Holding the row locks until commit is what serializes
// concurrent uploads to the same key: the loser of the race blocks here,
// then sees the winner's rows and allocates the following number.
//
// SQLite has no row-level FOR UPDATE; its writer lock already serializes
// whole transactions, so the locking clause is skipped there.
func allocateVersion(tx *gorm.DB, key Key) (int, error) {
	q := tx.Model(&model.Document{}).
		Where("fraction_id = ? AND year = ? AND period_code = ?", key.FractionID, key.Year, key.PeriodCode)

	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var existing []model.Document
	if err := q.Find(&existing).Error; err != nil {
		return 0, fmt.Errorf("lock classification key: %w", err)
	}

	next := 1
	for i := range existing {
		if existing[i].Version >= next {
			next = existing[i].Version + 1
		}
	}

	if len(existing) > 0 {
		err := tx.Model(&model.Document{}).
			Where("fraction_id = ? AND year = ? AND period_code = ? AND is_current = ?",
				key.FractionID, key.Year, key.PeriodCode, true).
			Update("is_current", false).Error
		if err != nil {
			return 0, fmt.Errorf("demote current version: %w", err)
		}
	}

	return next, nil
}
