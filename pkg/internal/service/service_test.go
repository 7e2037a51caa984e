package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teczamora/repositorio65/pkg/configs"
	ctxPkg "github.com/teczamora/repositorio65/pkg/context"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/storage"
	"github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	dbc "github.com/teczamora/repositorio65/pkg/internal/storage/db"
	kvc "github.com/teczamora/repositorio65/pkg/internal/storage/kv"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

// testEnv bundles the service under test with direct handles on its
// storage, so tests can seed rows and inspect blobs.
type testEnv struct {
	ctx  context.Context
	svc  *service.DocumentService
	db   *gorm.DB
	blob *blob.Client

	transparency model.Fraction
	finance      model.Fraction
	uploader     model.UserProfile
	treasurer    model.UserProfile
	noDept       model.UserProfile
}

var testDBSeq int

// newTestEnv builds a service over a shared in-memory SQLite database, a
// temp-dir blob store and the memory KV. The busy timeout plus immediate
// transactions keep concurrent writers serialized instead of failing with
// SQLITE_BUSY.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	testDBSeq++
	dsn := fmt.Sprintf(
		"file:svc%d?mode=memory&cache=shared&_pragma=busy_timeout(10000)&_txlock=immediate",
		testDBSeq,
	)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	dbClient := &dbc.Client{DB: gdb}
	if err := dbClient.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	local, err := blob.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("local blob: %v", err)
	}

	memStore, err := kvc.NewKVStore(context.Background(), kvc.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	mgr := storage.NewManager(dbClient, &blob.Client{Backend: local}, &kvc.Client{KVStore: memStore})
	ctx := ctxPkg.WithStorageManager(context.Background(), mgr)

	env := &testEnv{
		ctx:  ctx,
		svc:  service.NewDocumentService(ctx),
		db:   gdb,
		blob: mgr.GetBlobClient(),
	}

	env.transparency = model.Fraction{
		Number: "III", Name: "Facultades de cada área",
		Department: model.DepartmentTransparency, Active: true,
	}
	env.finance = model.Fraction{
		Number: "VIII", Name: "Remuneración bruta y neta",
		Department: model.DepartmentFinance, Active: true,
	}
	if err := gdb.Create(&env.transparency).Error; err != nil {
		t.Fatalf("seed fraction: %v", err)
	}
	if err := gdb.Create(&env.finance).Error; err != nil {
		t.Fatalf("seed fraction: %v", err)
	}

	env.uploader = model.UserProfile{Username: "ana", Department: model.DepartmentTransparency}
	env.treasurer = model.UserProfile{Username: "benito", Department: model.DepartmentFinance}
	env.noDept = model.UserProfile{Username: "carla"}
	for _, p := range []*model.UserProfile{&env.uploader, &env.treasurer, &env.noDept} {
		if err := gdb.Create(p).Error; err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}

	return env
}

// payload builds an in-memory upload payload with the given content.
func payload(name, content string) types.Payload {
	return types.Payload{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// shortPayload declares more bytes than its reader delivers, simulating a
// client that disconnected mid-upload.
func shortPayload(name, content string, declared int64) types.Payload {
	return types.Payload{
		Filename: name,
		Size:     declared,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

// uploadReq is a convenient default classification for the transparency
// fraction seeded by newTestEnv.
func (e *testEnv) uploadReq(periodType, periodCode string, year int) *types.UploadRequest {
	return &types.UploadRequest{
		FractionID: e.transparency.ID,
		PeriodType: periodType,
		Year:       year,
		PeriodCode: periodCode,
	}
}

func (e *testEnv) mustSubmit(t *testing.T, req *types.UploadRequest, payloads ...types.Payload) *types.UploadResponse {
	t.Helper()

	resp, err := e.svc.Submit(e.ctx, &e.uploader, req, payloads)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	return resp
}

func (e *testEnv) readBlob(t *testing.T, key string) string {
	t.Helper()

	rc, err := e.blob.Get(e.ctx, key)
	if err != nil {
		t.Fatalf("read blob %s: %v", key, err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		t.Fatalf("copy blob %s: %v", key, err)
	}

	return buf.String()
}

func (e *testEnv) countDocuments(t *testing.T) int64 {
	t.Helper()

	var n int64
	if err := e.db.Model(&model.Document{}).Count(&n).Error; err != nil {
		t.Fatalf("count documents: %v", err)
	}

	return n
}
