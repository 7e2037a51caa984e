package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

// Stats summarizes the repository for the requester's department: active
// document counts per fraction and upload volume per year.
func (ds *DocumentService) Stats(ctx context.Context, requester *model.UserProfile) (*types.StatsResponse, error) {
	if requester == nil || !requester.HasDepartment() {
		return nil, fmt.Errorf("%w: no department assignment", types.ErrUnauthorized)
	}

	// Fresh query per aggregate; GORM chains accumulate conditions.
	scoped := func() *gorm.DB {
		return ds.dbClient.WithContext(ctx).
			Model(&model.Document{}).
			Joins("JOIN fractions ON fractions.id = documents.fraction_id").
			Where("fractions.department = ?", requester.Department)
	}

	resp := &types.StatsResponse{Department: string(requester.Department)}

	err := scoped().
		Where("documents.is_current = ?", true).
		Count(&resp.TotalActive).Error
	if err != nil {
		return nil, fmt.Errorf("count active documents: %w", err)
	}

	err = scoped().
		Select("fractions.number AS fraction_number, fractions.name AS fraction_name, COUNT(*) AS total").
		Where("documents.is_current = ?", true).
		Group("fractions.number, fractions.name").
		Order("fractions.number").
		Scan(&resp.ByFraction).Error
	if err != nil {
		return nil, fmt.Errorf("group by fraction: %w", err)
	}

	err = scoped().
		Select("documents.year AS year, COUNT(*) AS total").
		Group("documents.year").
		Order("documents.year DESC").
		Scan(&resp.ByYear).Error
	if err != nil {
		return nil, fmt.Errorf("group by year: %w", err)
	}

	return resp, nil
}
