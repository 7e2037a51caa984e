package service_test

import (
	"errors"
	"io"
	"testing"

	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

var serveMeta = service.AccessMeta{IP: "10.0.0.7", UserAgent: "test-agent"}

func TestServeRecordsAccess(t *testing.T) {
	env := newTestEnv(t)

	resp := env.mustSubmit(t, env.uploadReq("quarterly", "Q1", 2024),
		payload("informe.pdf", "contenido"))
	docID := resp.Documents[0].ID

	result, err := env.svc.Serve(env.ctx, docID, &env.uploader, serveMeta)
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	defer result.Content.Close()

	body, err := io.ReadAll(result.Content)
	if err != nil {
		t.Fatalf("read content: %v", err)
	}

	if string(body) != "contenido" {
		t.Errorf("content = %q", body)
	}

	if result.ContentType != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", result.ContentType)
	}

	var entry model.AccessLog
	if err := env.db.First(&entry).Error; err != nil {
		t.Fatalf("load access log: %v", err)
	}

	if entry.DocumentID != docID || entry.IsPublic {
		t.Errorf("access log = %+v, want authenticated access of doc %d", entry, docID)
	}

	if entry.UserProfileID == nil || *entry.UserProfileID != env.uploader.ID {
		t.Errorf("access log user = %v, want %d", entry.UserProfileID, env.uploader.ID)
	}

	if entry.IPAddress != "10.0.0.7" || entry.UserAgent != "test-agent" {
		t.Errorf("access log meta = %q/%q", entry.IPAddress, entry.UserAgent)
	}
}

func TestServePublicRecordsAnonymousAccess(t *testing.T) {
	env := newTestEnv(t)

	resp := env.mustSubmit(t, env.uploadReq("quarterly", "Q1", 2024),
		payload("informe.pdf", "contenido"))

	result, err := env.svc.ServePublic(env.ctx, resp.Documents[0].ID, serveMeta)
	if err != nil {
		t.Fatalf("public serve: %v", err)
	}
	result.Content.Close()

	var entry model.AccessLog
	if err := env.db.First(&entry).Error; err != nil {
		t.Fatalf("load access log: %v", err)
	}

	if !entry.IsPublic || entry.UserProfileID != nil {
		t.Errorf("access log = %+v, want public anonymous entry", entry)
	}
}

func TestServeAuthorization(t *testing.T) {
	env := newTestEnv(t)

	resp := env.mustSubmit(t, env.uploadReq("quarterly", "Q1", 2024),
		payload("informe.pdf", "contenido"))
	docID := resp.Documents[0].ID

	if _, err := env.svc.Serve(env.ctx, docID, &env.treasurer, serveMeta); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("foreign department: err = %v, want ErrUnauthorized", err)
	}

	if _, err := env.svc.Serve(env.ctx, docID, nil, serveMeta); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("anonymous: err = %v, want ErrUnauthorized", err)
	}

	// Denied serves leave no access trace.
	var n int64
	if err := env.db.Model(&model.AccessLog{}).Count(&n).Error; err != nil {
		t.Fatalf("count access logs: %v", err)
	}

	if n != 0 {
		t.Errorf("access log rows = %d, want 0", n)
	}
}

func TestServeUnknownDocument(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.Serve(env.ctx, 424242, &env.uploader, serveMeta); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestServeMissingBlob(t *testing.T) {
	env := newTestEnv(t)

	resp := env.mustSubmit(t, env.uploadReq("quarterly", "Q1", 2024),
		payload("informe.pdf", "contenido"))

	if err := env.blob.Delete(env.ctx, "documents/III/2024/informe.pdf"); err != nil {
		t.Fatalf("delete blob: %v", err)
	}

	_, err := env.svc.Serve(env.ctx, resp.Documents[0].ID, &env.uploader, serveMeta)
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for record without content", err)
	}
}

func TestServeSurvivesAccessLogFailure(t *testing.T) {
	env := newTestEnv(t)

	resp := env.mustSubmit(t, env.uploadReq("quarterly", "Q1", 2024),
		payload("informe.pdf", "contenido"))

	// A broken audit table must not take down the serve path.
	if err := env.db.Migrator().DropTable(&model.AccessLog{}); err != nil {
		t.Fatalf("drop access log table: %v", err)
	}

	result, err := env.svc.Serve(env.ctx, resp.Documents[0].ID, &env.uploader, serveMeta)
	if err != nil {
		t.Fatalf("serve with broken audit table: %v", err)
	}
	defer result.Content.Close()

	body, _ := io.ReadAll(result.Content)
	if string(body) != "contenido" {
		t.Errorf("content = %q", body)
	}
}

func TestListStatesAndFilters(t *testing.T) {
	env := newTestEnv(t)

	req := env.uploadReq("quarterly", "Q1", 2024)
	env.mustSubmit(t, req, payload("informe.pdf", "v1"))
	env.mustSubmit(t, req, payload("informe.pdf", "v2"))
	env.mustSubmit(t, env.uploadReq("annual", "A", 2023), payload("cuenta-publica.pdf", "x"))

	list := func(lr *types.ListRequest) *types.ListResponse {
		t.Helper()

		resp, err := env.svc.List(env.ctx, &env.uploader, lr)
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		return resp
	}

	// Default state is current: the demoted first version is hidden.
	resp := list(&types.ListRequest{})
	if resp.Total != 2 {
		t.Errorf("current total = %d, want 2", resp.Total)
	}

	for _, d := range resp.Documents {
		if !d.IsCurrent {
			t.Errorf("current listing contains historical %s v%d", d.OriginalName, d.Version)
		}
	}

	if resp := list(&types.ListRequest{State: types.StateHistorical}); resp.Total != 1 {
		t.Errorf("historical total = %d, want 1", resp.Total)
	}

	if resp := list(&types.ListRequest{State: types.StateAll}); resp.Total != 3 {
		t.Errorf("all total = %d, want 3", resp.Total)
	}

	if resp := list(&types.ListRequest{State: types.StateAll, Year: 2023}); resp.Total != 1 {
		t.Errorf("year filter total = %d, want 1", resp.Total)
	}

	if resp := list(&types.ListRequest{Query: "cuenta"}); resp.Total != 1 {
		t.Errorf("search total = %d, want 1", resp.Total)
	}

	// Department scoping: the finance user sees none of these documents.
	other, err := env.svc.List(env.ctx, &env.treasurer, &types.ListRequest{State: types.StateAll})
	if err != nil {
		t.Fatalf("list as finance: %v", err)
	}

	if other.Total != 0 {
		t.Errorf("foreign department total = %d, want 0", other.Total)
	}
}

func TestListPagination(t *testing.T) {
	env := newTestEnv(t)

	for _, name := range []string{"uno.pdf", "dos.pdf", "tres.pdf"} {
		env.mustSubmit(t, env.uploadReq("annual", "A", 2024), payload(name, "x"))
	}

	resp, err := env.svc.List(env.ctx, &env.uploader,
		&types.ListRequest{State: types.StateAll, Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if resp.Total != 3 || len(resp.Documents) != 1 {
		t.Errorf("page 2 of 2: total = %d, rows = %d; want 3, 1", resp.Total, len(resp.Documents))
	}
}

func TestListRequiresDepartment(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.svc.List(env.ctx, &env.noDept, &types.ListRequest{}); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestHistory(t *testing.T) {
	env := newTestEnv(t)

	req := env.uploadReq("quarterly", "T1", 2024)
	env.mustSubmit(t, req, payload("informe.pdf", "v1"))
	env.mustSubmit(t, req, payload("informe.pdf", "v2"))

	history, err := env.svc.History(env.ctx, &env.uploader, env.transparency.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("history rows = %d, want 2", len(history))
	}

	if history[0].Version != 2 || history[1].Version != 1 {
		t.Errorf("history order = v%d, v%d; want newest first", history[0].Version, history[1].Version)
	}

	if _, err := env.svc.History(env.ctx, &env.treasurer, env.transparency.ID); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("foreign history err = %v, want ErrUnauthorized", err)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	req := env.uploadReq("quarterly", "Q1", 2024)
	env.mustSubmit(t, req, payload("informe.pdf", "v1"))
	env.mustSubmit(t, req, payload("informe.pdf", "v2"))
	env.mustSubmit(t, env.uploadReq("annual", "A", 2023), payload("cuenta.pdf", "x"))

	stats, err := env.svc.Stats(env.ctx, &env.uploader)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Department != string(model.DepartmentTransparency) {
		t.Errorf("department = %q", stats.Department)
	}

	// v1 of the quarterly report is superseded: 2 active documents.
	if stats.TotalActive != 2 {
		t.Errorf("total active = %d, want 2", stats.TotalActive)
	}

	if len(stats.ByFraction) != 1 || stats.ByFraction[0].Total != 2 {
		t.Errorf("by fraction = %+v", stats.ByFraction)
	}

	// The year breakdown counts every stored version.
	years := map[int]int64{}
	for _, y := range stats.ByYear {
		years[y.Year] = y.Total
	}

	if years[2024] != 2 || years[2023] != 1 {
		t.Errorf("by year = %+v, want 2024:2 2023:1", stats.ByYear)
	}
}
