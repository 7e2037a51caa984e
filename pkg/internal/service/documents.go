package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/teczamora/repositorio65/pkg/cache"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	"github.com/teczamora/repositorio65/pkg/internal/types"
	nlog "github.com/teczamora/repositorio65/pkg/log"
	"github.com/teczamora/repositorio65/pkg/metrics"
)

// AccessMeta carries the request attributes recorded alongside a serve.
type AccessMeta struct {
	IP        string
	UserAgent string
}

// ServeResult is an open content stream plus the metadata handlers need to
// build the response. The caller owns Content and must close it.
type ServeResult struct {
	Document    *model.Document
	Content     io.ReadCloser
	ContentType string
}

// Serve opens a document for an authenticated requester. The requester's
// department must own the document's fraction.
func (ds *DocumentService) Serve(ctx context.Context, id uint, requester *model.UserProfile, meta AccessMeta) (*ServeResult, error) {
	doc, err := ds.getDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	if requester == nil || requester.Department != doc.Fraction.Department {
		return nil, fmt.Errorf("%w: document %d", types.ErrUnauthorized, id)
	}

	return ds.openContent(ctx, doc, requester, meta, false)
}

// ServePublic opens a document for the transparency portal. No
// authorization applies; the access is recorded as public with no user.
func (ds *DocumentService) ServePublic(ctx context.Context, id uint, meta AccessMeta) (*ServeResult, error) {
	doc, err := ds.getDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	return ds.openContent(ctx, doc, nil, meta, true)
}

func (ds *DocumentService) getDocument(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document

	err := ds.dbClient.WithContext(ctx).Preload("Fraction").First(&doc, id).Error
	if err != nil {
		return nil, fmt.Errorf("%w: document %d", types.ErrNotFound, id)
	}

	return &doc, nil
}

// openContent fetches the blob behind a record. A record whose content is
// gone is reported as not found; the mismatch is visible in metrics and
// logs so operators can reconcile the store.
func (ds *DocumentService) openContent(ctx context.Context, doc *model.Document, requester *model.UserProfile, meta AccessMeta, public bool) (*ServeResult, error) {
	rc, err := ds.blobClient.Get(ctx, doc.ObjectKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotExist) {
			metrics.MissingBlobs.Inc()
			nlog.Logger().Warn().
				Uint("document_id", doc.ID).
				Str("key", doc.ObjectKey).
				Msg("document record exists but blob is missing")

			return nil, fmt.Errorf("%w: content of document %d", types.ErrNotFound, doc.ID)
		}

		return nil, fmt.Errorf("%w: read %s: %v", types.ErrStorageFailure, doc.ObjectKey, err)
	}

	ds.recordAccess(ctx, doc, requester, meta.IP, meta.UserAgent, public)

	access := "authenticated"
	if public {
		access = "public"
	}
	metrics.ServesTotal.WithLabelValues(access).Inc()

	return &ServeResult{
		Document:    doc,
		Content:     rc,
		ContentType: contentTypeFor(doc.OriginalName),
	}, nil
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}

	return "application/octet-stream"
}

const (
	defaultPageSize = 20
	listTTL         = 30 * time.Second
	listGenKey      = "documents:gen"
)

// List returns a filtered, paginated listing scoped to the fractions of the
// requester's department. Results are cached briefly; every committed
// upload bumps the generation stamp, which rotates all listing keys.
func (ds *DocumentService) List(ctx context.Context, requester *model.UserProfile, req *types.ListRequest) (*types.ListResponse, error) {
	if requester == nil || !requester.HasDepartment() {
		return nil, fmt.Errorf("%w: no department assignment", types.ErrUnauthorized)
	}

	if req.Page < 1 {
		req.Page = 1
	}

	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}

	if req.State == "" {
		req.State = types.StateCurrent
	}

	key := ds.listCacheKey(ctx, requester, req)

	return cache.GetOrSet(ctx, ds.cache, key, func() (*types.ListResponse, error) {
		return ds.listFromDB(ctx, requester, req)
	}, listTTL)
}

func (ds *DocumentService) listFromDB(ctx context.Context, requester *model.UserProfile, req *types.ListRequest) (*types.ListResponse, error) {
	q := ds.dbClient.WithContext(ctx).
		Model(&model.Document{}).
		Joins("JOIN fractions ON fractions.id = documents.fraction_id").
		Where("fractions.department = ?", requester.Department)

	if req.FractionID != 0 {
		q = q.Where("documents.fraction_id = ?", req.FractionID)
	}

	if req.Year != 0 {
		q = q.Where("documents.year = ?", req.Year)
	}

	switch req.State {
	case types.StateCurrent:
		q = q.Where("documents.is_current = ?", true)
	case types.StateHistorical:
		q = q.Where("documents.is_current = ?", false)
	case types.StateAll:
	}

	if req.Query != "" {
		like := "%" + req.Query + "%"
		q = q.Where(
			"documents.original_name LIKE ? OR fractions.name LIKE ? OR fractions.number LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}

	var docs []model.Document

	err := q.Preload("Fraction").
		Order("documents.created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	resp := &types.ListResponse{
		Documents: make([]types.DocumentResponse, 0, len(docs)),
		Total:     total,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}
	for i := range docs {
		resp.Documents = append(resp.Documents, types.NewDocumentResponse(&docs[i]))
	}

	return resp, nil
}

// History returns every stored version for one fraction, newest first.
// Records are never deleted, so this is the complete audit trail.
func (ds *DocumentService) History(ctx context.Context, requester *model.UserProfile, fractionID uint) ([]types.DocumentResponse, error) {
	fraction, err := ds.resolveFraction(ctx, requester, fractionID)
	if err != nil {
		return nil, err
	}

	var docs []model.Document

	err = ds.dbClient.WithContext(ctx).
		Preload("Fraction").
		Where("fraction_id = ?", fraction.ID).
		Order("year DESC, period_code, version DESC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	out := make([]types.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, types.NewDocumentResponse(&docs[i]))
	}

	return out, nil
}

// listCacheKey folds the department, the filters and the current listing
// generation into a compact hash key.
func (ds *DocumentService) listCacheKey(ctx context.Context, requester *model.UserProfile, req *types.ListRequest) string {
	h := xxhash.New()
	_, _ = h.WriteString(string(requester.Department))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.FormatUint(uint64(req.FractionID), 10))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.Itoa(req.Year))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(string(req.State))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(req.Query)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.Itoa(req.Page))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(strconv.Itoa(req.PageSize))
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(ds.listGeneration(ctx))

	return "documents:list:" + strconv.FormatUint(h.Sum64(), 16)
}

// listGeneration reads the current generation stamp, seeding one if absent.
func (ds *DocumentService) listGeneration(ctx context.Context) string {
	if raw, err := ds.kvClient.Get(ctx, listGenKey); err == nil {
		return string(raw)
	}

	gen := strconv.FormatInt(time.Now().UnixNano(), 16)
	_ = ds.kvClient.Set(ctx, listGenKey, []byte(gen), 0)

	return gen
}

// bumpListGeneration invalidates every cached listing in one write.
func (ds *DocumentService) bumpListGeneration(ctx context.Context) {
	gen := strconv.FormatInt(time.Now().UnixNano(), 16)
	if err := ds.kvClient.Set(ctx, listGenKey, []byte(gen), 0); err != nil {
		nlog.Logger().Warn().Err(err).Msg("listing cache invalidation failed")
	}
}
