package fiber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/usecase"
)

type fakeDashboardUseCase struct {
	StateFn      func(ctx context.Context, sessionID string) (*domain.Dashboard, error)
	SetFiltersFn func(ctx context.Context, sessionID string, p domain.FilterPatch) (*domain.Dashboard, error)
	LoadAllFn    func(ctx context.Context, sessionID string, opts usecase.LoadOptions) (*domain.Dashboard, error)

	lastSession string
	lastPatch   domain.FilterPatch
	lastOpts    usecase.LoadOptions
	loadCalled  bool
}

func (f *fakeDashboardUseCase) State(ctx context.Context, sessionID string) (*domain.Dashboard, error) {
	f.lastSession = sessionID
	if f.StateFn != nil {
		return f.StateFn(ctx, sessionID)
	}
	return readyDashboard(), nil
}

func (f *fakeDashboardUseCase) SetFilters(ctx context.Context, sessionID string, p domain.FilterPatch) (*domain.Dashboard, error) {
	f.lastSession = sessionID
	f.lastPatch = p
	if f.SetFiltersFn != nil {
		return f.SetFiltersFn(ctx, sessionID, p)
	}
	return readyDashboard(), nil
}

func (f *fakeDashboardUseCase) LoadAll(ctx context.Context, sessionID string, opts usecase.LoadOptions) (*domain.Dashboard, error) {
	f.lastSession = sessionID
	f.lastOpts = opts
	f.loadCalled = true
	if f.LoadAllFn != nil {
		return f.LoadAllFn(ctx, sessionID, opts)
	}
	return readyDashboard(), nil
}

func readyDashboard() *domain.Dashboard {
	d := domain.NewDashboard()
	d.Commit(domain.Views{
		KPI:    domain.KPI{Yesterday: 10, Last7: 70, WeekOverWeek: 12.5},
		Trend:  domain.Trend{Series: []domain.TrendPoint{{Date: "2025-10-17", Label: "10-17", Events: 10}}},
		TopGeo: domain.TopGeo{Title: "Top 10 country (2025-10-17)", Ranking: []domain.GeoRank{{Label: "US", Events: 10}}},
		Mix: domain.Mix{
			Pie:       []domain.PieSlice{{Name: "page_view", Value: 10}},
			TopEvents: []string{"page_view"},
			Stack:     []domain.StackDay{{Date: "2025-10-17", Label: "10-17", Events: map[string]int64{"page_view": 10}}},
		},
	}, "auto:1|enabled:0|geo:country", time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC))
	return d
}

// helper: create fiber app and routes
func setupTestApp(uc DashboardUseCase) *fiber.App {
	app := fiber.New()
	NewDashboardHandler(uc, nil).Register(app, "/ga/dashboard")
	return app
}

// helper: send request
func doRequest(t *testing.T, app *fiber.App, method, path, sessionID string, body io.Reader) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	_ = resp.Body.Close()

	return resp, respBody
}

func decodeDashboard(t *testing.T, body []byte) DashboardResponse {
	t.Helper()
	var out DashboardResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid json response: %v (body: %s)", err, string(body))
	}
	return out
}

// ------------------------------------------------------------
// SESSION
// ------------------------------------------------------------

func TestGetDashboard_NewSession(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodGet, "/ga/dashboard", "", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	sid := resp.Header.Get(SessionHeader)
	if sid == "" {
		t.Fatalf("expected a generated session id")
	}
	if fakeUC.lastSession != sid {
		t.Fatalf("expected usecase to see session %s, got %s", sid, fakeUC.lastSession)
	}
	if fakeUC.loadCalled {
		t.Fatalf("GET must not trigger a load")
	}
}

func TestGetDashboard_ExistingSession(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodGet, "/ga/dashboard", "sess-42", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	if resp.Header.Get(SessionHeader) != "sess-42" {
		t.Fatalf("expected session header to be echoed, got %q", resp.Header.Get(SessionHeader))
	}
	if fakeUC.lastSession != "sess-42" {
		t.Fatalf("expected session sess-42, got %s", fakeUC.lastSession)
	}

	got := decodeDashboard(t, body)
	if got.Status != "ready" || got.CacheKey != "auto:1|enabled:0|geo:country" {
		t.Errorf("unexpected dashboard: %+v", got)
	}
	if got.KPI.Yesterday != 10 || got.KPI.Last7 != 70 || got.KPI.WeekOverWeek != 12.5 {
		t.Errorf("unexpected kpi: %+v", got.KPI)
	}
	if len(got.Trend.Data) != 1 || got.TopGeo.Title != "Top 10 country (2025-10-17)" {
		t.Errorf("unexpected panels: %+v %+v", got.Trend, got.TopGeo)
	}
	if len(got.Mix.Stack7d) != 1 || got.Mix.Stack7d[0].Events["page_view"] != 10 {
		t.Errorf("unexpected mix: %+v", got.Mix)
	}
	if got.FetchedAt == nil || !got.FetchedAt.Equal(time.Date(2025, 10, 18, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected fetched_at: %v", got.FetchedAt)
	}
}

func TestGetDashboard_IdleOmitsFetchedAt(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{
		StateFn: func(ctx context.Context, sessionID string) (*domain.Dashboard, error) {
			return domain.NewDashboard(), nil
		},
	}
	app := setupTestApp(fakeUC)

	_, body := doRequest(t, app, http.MethodGet, "/ga/dashboard", "s1", nil)

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if _, ok := raw["fetched_at"]; ok {
		t.Errorf("expected fetched_at to be omitted before the first load")
	}
	if raw["status"] != "idle" {
		t.Errorf("expected idle, got %v", raw["status"])
	}
	trend := raw["trend"].(map[string]any)
	if data, ok := trend["data"].([]any); !ok || len(data) != 0 {
		t.Errorf("expected empty trend data array, got %v", trend["data"])
	}
}

// ------------------------------------------------------------
// FILTERS
// ------------------------------------------------------------

func TestUpdateFilters_AppliesThenLoads(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPatch, "/ga/dashboard/filters", "s1",
		bytes.NewBufferString(`{"geo_level":"region","only_enabled":true}`))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}

	p := fakeUC.lastPatch
	if p.GeoLevel == nil || *p.GeoLevel != "region" {
		t.Fatalf("expected geo level patch, got %+v", p)
	}
	if p.OnlyEnabled == nil || !*p.OnlyEnabled {
		t.Fatalf("expected only_enabled patch, got %+v", p)
	}
	if p.OnlyAuto != nil {
		t.Fatalf("omitted fields must stay nil, got %+v", p)
	}

	if !fakeUC.loadCalled || fakeUC.lastOpts.Force {
		t.Fatalf("expected a non-forced load after the filter update")
	}
}

func TestUpdateFilters_InvalidJSON(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPatch, "/ga/dashboard/filters", "s1", bytes.NewBufferString(`{"geo_level":`))

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}
	if fakeUC.loadCalled {
		t.Fatalf("invalid payload must not trigger a load")
	}
}

func TestUpdateFilters_InvalidGeoLevel(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{
		SetFiltersFn: func(ctx context.Context, sessionID string, p domain.FilterPatch) (*domain.Dashboard, error) {
			return nil, usecase.ErrInvalidGeoLevel
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPatch, "/ga/dashboard/filters", "s1", bytes.NewBufferString(`{"geo_level":"planet"}`))

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadRequest, resp.StatusCode, string(body))
	}

	var got ErrorResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if got.Error != "invalid_filters" {
		t.Errorf("expected error=invalid_filters, got %s", got.Error)
	}
	if fakeUC.loadCalled {
		t.Fatalf("rejected filters must not trigger a load")
	}
}

// ------------------------------------------------------------
// LOAD
// ------------------------------------------------------------

func TestLoadDashboard_Force(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/ga/dashboard/load?force=true", "s1", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	if !fakeUC.lastOpts.Force {
		t.Fatalf("expected force to be forwarded")
	}
}

func TestLoadDashboard_DefaultNotForced(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	doRequest(t, app, http.MethodPost, "/ga/dashboard/load", "s1", nil)

	if !fakeUC.loadCalled || fakeUC.lastOpts.Force {
		t.Fatalf("expected a non-forced load, got %+v", fakeUC.lastOpts)
	}
}

func TestLoadDashboard_UpstreamFailureKeepsData(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{
		LoadAllFn: func(ctx context.Context, sessionID string, opts usecase.LoadOptions) (*domain.Dashboard, error) {
			d := readyDashboard()
			d.Fail("trend query: connection reset")
			return d, errors.New("trend query: connection reset")
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/ga/dashboard/load", "s1", nil)

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusBadGateway, resp.StatusCode, string(body))
	}

	got := decodeDashboard(t, body)
	if got.Status != "error" {
		t.Errorf("expected status=error, got %s", got.Status)
	}
	if got.KPI.Error != "trend query: connection reset" || got.Mix.Error == "" {
		t.Errorf("expected the error on every panel, got %+v / %+v", got.KPI, got.Mix)
	}
	if got.KPI.Last7 != 70 {
		t.Errorf("expected previous data in the body, got %+v", got.KPI)
	}
}

func TestLoadDashboard_InternalError(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{
		LoadAllFn: func(ctx context.Context, sessionID string, opts usecase.LoadOptions) (*domain.Dashboard, error) {
			return nil, errors.New("unexpected")
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodPost, "/ga/dashboard/load", "s1", nil)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusInternalServerError, resp.StatusCode, string(body))
	}
}

// ------------------------------------------------------------
// EXPORT
// ------------------------------------------------------------

func TestExportDashboard(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodGet, "/ga/dashboard/export", "s1", nil)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusOK, resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); cd != `attachment; filename="ga-dashboard.xlsx"` {
		t.Errorf("unexpected content disposition: %s", cd)
	}
	if !bytes.HasPrefix(body, []byte("PK")) {
		t.Errorf("expected an xlsx body")
	}
	if fakeUC.loadCalled {
		t.Errorf("export must use the cached state")
	}
}

func TestExportDashboard_StateError(t *testing.T) {
	fakeUC := &fakeDashboardUseCase{
		StateFn: func(ctx context.Context, sessionID string) (*domain.Dashboard, error) {
			return nil, errors.New("boom")
		},
	}
	app := setupTestApp(fakeUC)

	resp, body := doRequest(t, app, http.MethodGet, "/ga/dashboard/export", "s1", nil)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d (body: %s)", http.StatusInternalServerError, resp.StatusCode, string(body))
	}
}
