package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/types"
	nlog "github.com/teczamora/repositorio65/pkg/log"
	"github.com/teczamora/repositorio65/pkg/metrics"
)

// Submit commits an upload batch. Every file in the batch lands under the
// same classification key with the same freshly allocated version, or none
// of them land at all. The previous current version (if any) is demoted in
// the same transaction that inserts the new rows.
func (ds *DocumentService) Submit(ctx context.Context, requester *model.UserProfile, req *types.UploadRequest, payloads []types.Payload) (*types.UploadResponse, error) {
	cfg := &configs.GetConfig().Upload

	if requester == nil || !requester.HasDepartment() {
		metrics.UploadsRejected.WithLabelValues("unauthorized").Inc()

		return nil, fmt.Errorf("%w: no department assignment", types.ErrUnauthorized)
	}

	periodCode, err := NormalizePeriod(model.PeriodType(req.PeriodType), req.PeriodCode)
	if err != nil {
		metrics.UploadsRejected.WithLabelValues("classification").Inc()

		return nil, err
	}

	if err := validateYear(req.Year, cfg); err != nil {
		metrics.UploadsRejected.WithLabelValues("classification").Inc()

		return nil, err
	}

	fraction, err := ds.resolveFraction(ctx, requester, req.FractionID)
	if err != nil {
		metrics.UploadsRejected.WithLabelValues("classification").Inc()

		return nil, err
	}

	if batchErr := validatePayloads(payloads, req.Bundle, cfg); batchErr != nil {
		metrics.UploadsRejected.WithLabelValues("payload").Inc()

		return nil, batchErr
	}

	key := Key{FractionID: fraction.ID, Year: req.Year, PeriodCode: periodCode}
	allowedExts, maxBytes := uploadPolicy(req.Bundle, cfg)

	var (
		docs    []model.Document
		version int
		created []string // blob keys that did not exist before this batch
	)

	txErr := ds.dbClient.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		version, err = allocateVersion(tx, key)
		if err != nil {
			return err
		}

		docs = make([]model.Document, 0, len(payloads))
		for _, p := range payloads {
			// Re-checked under the open transaction so no payload can
			// slip a row past the batch gate.
			if v := payloadViolation(p, allowedExts, maxBytes); v != nil {
				return &types.BatchRejectedError{Payloads: []types.PayloadError{*v}}
			}

			objectKey := ResolvePath(fraction.Number, req.Year, p.Filename)

			fresh, werr := ds.writeBlob(ctx, objectKey, p)
			if werr != nil {
				return werr
			}

			if fresh {
				created = append(created, objectKey)
			}

			doc := model.Document{
				FractionID:    fraction.ID,
				UserProfileID: requester.ID,
				PeriodType:    model.PeriodType(req.PeriodType),
				Year:          req.Year,
				PeriodCode:    periodCode,
				ObjectKey:     objectKey,
				OriginalName:  p.Filename,
				Size:          p.Size,
				Bundle:        req.Bundle,
				IsCurrent:     true,
				Version:       version,
			}
			if err := tx.Create(&doc).Error; err != nil {
				return documentInsertError(key, version, err)
			}

			doc.Fraction = *fraction
			docs = append(docs, doc)
		}

		return nil
	})
	if txErr != nil {
		// Blobs written for keys that had no prior content are orphans now;
		// overwritten keys keep the new bytes (the old bytes are gone either
		// way, and the deterministic path means they carry the same name).
		for _, k := range created {
			if derr := ds.blobClient.Delete(ctx, k); derr != nil {
				nlog.Logger().Warn().Err(derr).Str("key", k).Msg("orphan blob cleanup failed")
			}
		}

		metrics.UploadsRejected.WithLabelValues("storage").Inc()

		return nil, txErr
	}

	ds.bumpListGeneration(ctx)
	metrics.UploadsCommitted.Inc()
	for _, p := range payloads {
		metrics.UploadBytes.Add(float64(p.Size))
	}

	nlog.Logger().Info().
		Str("fraction", fraction.Number).
		Int("year", req.Year).
		Str("period", periodCode).
		Int("version", version).
		Int("files", len(docs)).
		Str("user", requester.Username).
		Msg("upload batch committed")

	resp := &types.UploadResponse{
		Version:   version,
		Committed: len(docs),
		Documents: make([]types.DocumentResponse, 0, len(docs)),
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, types.NewDocumentResponse(&docs[i]))
	}

	return resp, nil
}

// writeBlob stores one payload and verifies the stored size. It reports
// whether the key was newly created, so a later rollback knows which blobs
// to sweep.
func (ds *DocumentService) writeBlob(ctx context.Context, key string, p types.Payload) (bool, error) {
	_, statErr := ds.blobClient.Stat(ctx, key)
	fresh := statErr != nil

	r, err := p.Open()
	if err != nil {
		return fresh, fmt.Errorf("%w: open %s: %v", types.ErrStorageFailure, p.Filename, err)
	}
	defer r.Close()

	if err := ds.blobClient.Put(ctx, key, r, p.Size); err != nil {
		return fresh, fmt.Errorf("%w: write %s: %v", types.ErrStorageFailure, p.Filename, err)
	}

	info, err := ds.blobClient.Stat(ctx, key)
	if err != nil {
		return fresh, fmt.Errorf("%w: verify %s: %v", types.ErrStorageFailure, p.Filename, err)
	}

	if info.Size != p.Size {
		return fresh, fmt.Errorf("%w: %s stored %d of %d bytes", types.ErrStorageFailure, p.Filename, info.Size, p.Size)
	}

	return fresh, nil
}

// documentInsertError classifies a failed row insert. A duplicate on the
// (fraction, year, period, version) index means two transactions allocated
// the same version number, which the row locks must make impossible; it is
// surfaced as a conflict and logged at error level, never retried.
func documentInsertError(key Key, version int, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		nlog.Logger().Error().
			Uint("fraction_id", key.FractionID).
			Int("year", key.Year).
			Str("period", key.PeriodCode).
			Int("version", version).
			Msg("duplicate version allocated, row locking discipline broken")

		return fmt.Errorf("%w: version %d already exists for fraction %d %d/%s",
			types.ErrConflict, version, key.FractionID, key.Year, key.PeriodCode)
	}

	return fmt.Errorf("insert document row: %w", err)
}

// uploadPolicy returns the extension list and size ceiling that apply to
// a batch.
func uploadPolicy(bundle bool, cfg *configs.UploadConfig) ([]string, int64) {
	if bundle {
		return cfg.BundleExtensions, cfg.MaxBundleBytes
	}

	return cfg.DocumentExtensions, cfg.MaxDocumentBytes
}

// payloadViolation checks one payload against the policy, reporting nil
// when it passes.
func payloadViolation(p types.Payload, allowed []string, maxBytes int64) *types.PayloadError {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p.Filename)), ".")

	switch {
	case !extensionAllowed(ext, allowed):
		return &types.PayloadError{
			Filename: p.Filename,
			Reason:   fmt.Sprintf("extension %q not permitted", ext),
		}
	case p.Size <= 0:
		return &types.PayloadError{
			Filename: p.Filename,
			Reason:   "empty file",
		}
	case p.Size > maxBytes:
		return &types.PayloadError{
			Filename: p.Filename,
			Reason:   fmt.Sprintf("size %d exceeds limit of %d bytes", p.Size, maxBytes),
		}
	}

	return nil
}

// validatePayloads applies the extension and size policy to the whole
// batch. All offending files are reported together; one bad file rejects
// the batch.
func validatePayloads(payloads []types.Payload, bundle bool, cfg *configs.UploadConfig) error {
	if len(payloads) == 0 {
		return &types.BatchRejectedError{Payloads: []types.PayloadError{
			{Filename: "", Reason: "no files submitted"},
		}}
	}

	allowed, maxBytes := uploadPolicy(bundle, cfg)

	var rejected []types.PayloadError

	for _, p := range payloads {
		if v := payloadViolation(p, allowed, maxBytes); v != nil {
			rejected = append(rejected, *v)
		}
	}

	if len(rejected) > 0 {
		return &types.BatchRejectedError{Payloads: rejected}
	}

	return nil
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}

	return false
}
