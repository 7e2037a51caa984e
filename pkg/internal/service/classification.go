package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teczamora/repositorio65/pkg/cache"
	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

// Key is a normalized classification key. Every document version hangs off
// exactly one key; version numbering and the is_current flag are scoped to it.
type Key struct {
	FractionID uint
	Year       int
	PeriodCode string
}

const maxPeriodCodeLen = 20

// periodVocabulary maps each cadence to its accepted codes. Quarterly
// accepts both the Q family and the legacy T family (T1..T4, "trimestre"
// codes carried over from the old portal); annual accepts the short and the
// spelled-out forms.
var periodVocabulary = map[model.PeriodType][]string{
	model.PeriodQuarterly:  {"Q1", "Q2", "Q3", "Q4", "T1", "T2", "T3", "T4"},
	model.PeriodSemiannual: {"S1", "S2"},
	model.PeriodAnnual:     {"A", "ANUAL", "ANNUAL"},
}

// NormalizePeriod trims, uppercases and validates a period code against the
// cadence vocabulary. The returned code is the canonical stored form.
func NormalizePeriod(periodType model.PeriodType, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > maxPeriodCodeLen {
		return "", fmt.Errorf("%w: empty or oversized period code", types.ErrInvalidClassification)
	}

	vocab, ok := periodVocabulary[periodType]
	if !ok {
		return "", fmt.Errorf("%w: unknown period type %q", types.ErrInvalidClassification, periodType)
	}

	for _, v := range vocab {
		if code == v {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w: period code %q not valid for %s", types.ErrInvalidClassification, code, periodType)
}

// validateYear checks the classification year against the configured range.
func validateYear(year int, cfg *configs.UploadConfig) error {
	if year < cfg.MinYear || year > cfg.MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", types.ErrInvalidClassification, year, cfg.MinYear, cfg.MaxYear)
	}

	return nil
}

const fractionCatalogTTL = 5 * time.Minute

// PermittedFractions returns the active fractions the requester may upload
// to, scoped by department. A profile without a department gets an empty
// list; that is a normal state for freshly provisioned accounts.
func (ds *DocumentService) PermittedFractions(ctx context.Context, requester *model.UserProfile) ([]model.Fraction, error) {
	if requester == nil || !requester.HasDepartment() {
		return []model.Fraction{}, nil
	}

	key := "fractions:active:" + string(requester.Department)

	return cache.GetOrSet(ctx, ds.cache, key, func() ([]model.Fraction, error) {
		var fractions []model.Fraction

		err := ds.dbClient.WithContext(ctx).
			Where("department = ? AND active = ?", requester.Department, true).
			Order("id").
			Find(&fractions).Error
		if err != nil {
			return nil, fmt.Errorf("list fractions: %w", err)
		}

		return fractions, nil
	}, fractionCatalogTTL)
}

// resolveFraction loads one fraction and checks the requester may upload to
// it. Unknown or inactive fractions are classification errors; a fraction
// owned by another department is an authorization error.
func (ds *DocumentService) resolveFraction(ctx context.Context, requester *model.UserProfile, id uint) (*model.Fraction, error) {
	var fraction model.Fraction

	err := ds.dbClient.WithContext(ctx).First(&fraction, id).Error
	if err != nil {
		return nil, fmt.Errorf("%w: fraction %d", types.ErrInvalidClassification, id)
	}

	if !fraction.Active {
		return nil, fmt.Errorf("%w: fraction %s is inactive", types.ErrInvalidClassification, fraction.Number)
	}

	if requester == nil || requester.Department != fraction.Department {
		return nil, fmt.Errorf("%w: fraction %s", types.ErrUnauthorized, fraction.Number)
	}

	return &fraction, nil
}
