package handle_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/teczamora/repositorio65/pkg/api"
	"github.com/teczamora/repositorio65/pkg/configs"
	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/storage"
	"github.com/teczamora/repositorio65/pkg/internal/storage/blob"
	dbc "github.com/teczamora/repositorio65/pkg/internal/storage/db"
	kvc "github.com/teczamora/repositorio65/pkg/internal/storage/kv"
	"github.com/teczamora/repositorio65/pkg/internal/types"
	"github.com/teczamora/repositorio65/pkg/middleware"
)

type httpEnv struct {
	engine   *gin.Engine
	db       *gorm.DB
	fraction model.Fraction
}

var httpDBSeq int

func newHTTPEnv(t *testing.T) *httpEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	httpDBSeq++
	dsn := fmt.Sprintf("file:http%d?mode=memory&cache=shared&_pragma=busy_timeout(10000)&_txlock=immediate", httpDBSeq)

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

	cfg := configs.GetConfig()
	engine := gin.New()
	engine.Use(
		middleware.StorageMiddleware(mgr),
		middleware.AuthMiddleware(cfg.Auth),
	)
	api.RegisterGroup(engine, cfg)

	env := &httpEnv{engine: engine, db: gdb}

	env.fraction = model.Fraction{
		Number: "III", Name: "Facultades de cada área",
		Department: model.DepartmentTransparency, Active: true,
	}
	if err := gdb.Create(&env.fraction).Error; err != nil {
		t.Fatalf("seed fraction: %v", err)
	}

	uploader := model.UserProfile{Username: "ana", Department: model.DepartmentTransparency}
	if err := gdb.Create(&uploader).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	return env
}

// do runs one request as the named user ("" for anonymous).
func (e *httpEnv) do(t *testing.T, method, path, user string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if user != "" {
		req.Header.Set("X-Auth-Request-User", user)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	return w
}

// multipartUpload builds a batch request for the seeded fraction.
func (e *httpEnv) multipartUpload(t *testing.T, periodCode string, files map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"fraction_id": fmt.Sprint(e.fraction.ID),
		"period_type": "quarterly",
		"year":        "2024",
		"period_code": periodCode,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}

	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}

		if _, err := io.Copy(fw, strings.NewReader(content)); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	return &buf, mw.FormDataContentType()
}

func (e *httpEnv) upload(t *testing.T, periodCode string, files map[string]string) types.UploadResponse {
	t.Helper()

	body, ct := e.multipartUpload(t, periodCode, files)

	w := e.do(t, http.MethodPost, "/api/v1/documents", "ana", body, ct)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp types.UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}

	return resp
}

func TestUploadEndpoint(t *testing.T) {
	env := newHTTPEnv(t)

	resp := env.upload(t, "t1", map[string]string{
		"Informe Q1.pdf": "contenido",
		"Anexo.xlsx":     "datos",
	})

	if resp.Version != 1 || resp.Committed != 2 {
		t.Fatalf("response = %+v, want version 1 with 2 files", resp)
	}

	for _, d := range resp.Documents {
		if d.PeriodCode != "T1" {
			t.Errorf("period code = %q, want T1", d.PeriodCode)
		}
	}
}

func TestUploadRejectionShape(t *testing.T) {
	env := newHTTPEnv(t)

	body, ct := env.multipartUpload(t, "Q1", map[string]string{"malware.exe": "x"})

	w := env.do(t, http.MethodPost, "/api/v1/documents", "ana", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp types.UploadErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}

	if len(resp.Payloads) != 1 || resp.Payloads[0].Filename != "malware.exe" {
		t.Errorf("payload errors = %+v", resp.Payloads)
	}
}

func TestUploadRequiresKnownUser(t *testing.T) {
	env := newHTTPEnv(t)

	body, ct := env.multipartUpload(t, "Q1", map[string]string{"informe.pdf": "x"})

	if w := env.do(t, http.MethodPost, "/api/v1/documents", "", body, ct); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}

	body, ct = env.multipartUpload(t, "Q1", map[string]string{"informe.pdf": "x"})

	if w := env.do(t, http.MethodPost, "/api/v1/documents", "desconocido", body, ct); w.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d, want 401", w.Code)
	}
}

func TestListEndpoint(t *testing.T) {
	env := newHTTPEnv(t)

	env.upload(t, "Q1", map[string]string{"informe.pdf": "v1"})
	env.upload(t, "Q1", map[string]string{"informe.pdf": "v2"})

	w := env.do(t, http.MethodGet, "/api/v1/documents?state=all", "ana", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp types.ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Total)
	}

	w = env.do(t, http.MethodGet, "/api/v1/documents", "ana", nil, "")

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Total != 1 {
		t.Errorf("current total = %d, want 1", resp.Total)
	}
}

func TestServeEndpoints(t *testing.T) {
	env := newHTTPEnv(t)

	up := env.upload(t, "Q1", map[string]string{"informe.pdf": "contenido"})
	id := up.Documents[0].ID

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/documents/%d/download", id), "ana", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}

	if w.Body.String() != "contenido" {
		t.Errorf("body = %q", w.Body.String())
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
		t.Errorf("disposition = %q, want attachment", cd)
	}

	// The public mirror needs no credentials.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/public/documents/%d/view", id), "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("public view status = %d", w.Code)
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "inline") {
		t.Errorf("public disposition = %q, want inline", cd)
	}

	// Both serves were recorded, one of them anonymously.
	var logs []model.AccessLog
	if err := env.db.Find(&logs).Error; err != nil {
		t.Fatalf("load access logs: %v", err)
	}

	if len(logs) != 2 {
		t.Fatalf("access logs = %d, want 2", len(logs))
	}

	public := 0
	for _, l := range logs {
		if l.IsPublic {
			public++

			if l.UserProfileID != nil {
				t.Error("public access recorded with a user")
			}
		}
	}

	if public != 1 {
		t.Errorf("public accesses = %d, want 1", public)
	}
}

func TestServeUnknownDocument(t *testing.T) {
	env := newHTTPEnv(t)

	if w := env.do(t, http.MethodGet, "/public/documents/999/view", "", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	env := newHTTPEnv(t)

	env.upload(t, "Q1", map[string]string{"informe.pdf": "x"})

	w := env.do(t, http.MethodGet, "/api/v1/documents/export.xlsx", "ana", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}

	if w.Body.Len() == 0 {
		t.Error("empty export body")
	}
}

func TestStatsAndFractionsEndpoints(t *testing.T) {
	env := newHTTPEnv(t)

	env.upload(t, "Q1", map[string]string{"informe.pdf": "x"})

	w := env.do(t, http.MethodGet, "/api/v1/stats", "ana", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}

	var stats types.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}

	if stats.TotalActive != 1 {
		t.Errorf("total active = %d, want 1", stats.TotalActive)
	}

	w = env.do(t, http.MethodGet, "/api/v1/fractions", "ana", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("fractions status = %d", w.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newHTTPEnv(t)

	for _, component := range []string{"db", "blob", "kv"} {
		w := env.do(t, http.MethodGet, "/api/v1/health/"+component, "", nil, "")
		if w.Code != http.StatusOK {
			t.Errorf("health %s status = %d, body = %s", component, w.Code, w.Body.String())
		}
	}
}
