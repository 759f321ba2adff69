package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/skyairrace/records-api/internal/cache"
	"github.com/skyairrace/records-api/internal/logic"
	"github.com/skyairrace/records-api/internal/models"
)

func newRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return New(cfg).Routes(RouterConfig{AllowedOrigins: []string{"*"}})
}

func serve(router http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestGetRanking_TableDriven(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
		firstPlayer    string
		emptyState     string
	}{
		{name: "Defaults", query: "", expectedStatus: http.StatusOK, expectedCount: 2, firstPlayer: "@alpha"},
		{name: "All Records", query: "mode=all", expectedStatus: http.StatusOK, expectedCount: 3, firstPlayer: "@alpha"},
		{name: "Version Facet", query: "versions=0.23", expectedStatus: http.StatusOK, expectedCount: 1, firstPlayer: "beta"},
		{name: "Approved Only", query: "approval=approved", expectedStatus: http.StatusOK, expectedCount: 2, firstPlayer: "@alpha"},
		{name: "Toggle Time Flips Order", query: "toggle=time", expectedStatus: http.StatusOK, expectedCount: 2, firstPlayer: "beta"},
		{name: "Category Without Default Course", query: "category=" + url.QueryEscape("外伝"), expectedStatus: http.StatusOK, emptyState: models.EmptySelectCourse},
		{name: "Other Course", query: "category=" + url.QueryEscape("外伝") + "&course=EX-1", expectedStatus: http.StatusOK, expectedCount: 1, firstPlayer: "Gamma"},
		{name: "No Matching Records", query: "course=No.2&controls=" + url.QueryEscape("コントローラー"), expectedStatus: http.StatusOK, emptyState: models.EmptyNoRecords},
		{name: "Empty Versions", query: "versions=", expectedStatus: http.StatusUnprocessableEntity},
		{name: "Empty Controls", query: "controls=", expectedStatus: http.StatusUnprocessableEntity},
		{name: "Unknown Control", query: "controls=keyboard", expectedStatus: http.StatusBadRequest},
		{name: "Unknown Mode", query: "mode=worst", expectedStatus: http.StatusBadRequest},
		{name: "Unknown Sort", query: "sort=achieved_at", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, "GET", "/api/v1/ranking?"+tt.query, nil)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if w.Code != http.StatusOK {
				return
			}
			view := decode[models.RankingView](t, w)
			if view.Count != tt.expectedCount {
				t.Errorf("count = %d, want %d", view.Count, tt.expectedCount)
			}
			if view.EmptyState != tt.emptyState {
				t.Errorf("empty_state = %q, want %q", view.EmptyState, tt.emptyState)
			}
			if tt.firstPlayer != "" && (len(view.Rows) == 0 || view.Rows[0].Player != tt.firstPlayer) {
				t.Errorf("first row = %+v, want player %s", view.Rows, tt.firstPlayer)
			}
		})
	}
}

func TestGetRanking_EchoesSelection(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	w := serve(router, "GET", "/api/v1/ranking?sort=time&order=desc&toggle=time", nil)
	view := decode[models.RankingView](t, w)

	sel := view.Selection
	if sel.Category != "本家" || sel.Course != "No.1" {
		t.Errorf("scope = %s/%s", sel.Category, sel.Course)
	}
	if sel.Sort != models.SortByTime || sel.Order != models.Ascending {
		t.Errorf("sort = %s %s, want time asc", sel.Sort, sel.Order)
	}
	if sel.Mode != models.RecordModeBest {
		t.Errorf("mode = %s", sel.Mode)
	}
	if len(sel.Versions) != 2 || sel.Versions[0] != "0.24.5~" {
		t.Errorf("versions = %v", sel.Versions)
	}
	if view.CourseLink != "https://example.com/no1" {
		t.Errorf("course_link = %q", view.CourseLink)
	}
}

func TestGetRankingCount(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	w := serve(router, "GET", "/api/v1/ranking/count?mode=all", nil)
	preview := decode[models.CountPreview](t, w)
	if !preview.Valid || preview.Count == nil || *preview.Count != 3 || preview.Label != "記録数: 3件" {
		t.Errorf("preview = %+v", preview)
	}

	w = serve(router, "GET", "/api/v1/ranking/count?versions=", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	preview = decode[models.CountPreview](t, w)
	if preview.Valid || preview.Count != nil || preview.Label != "記録数: -" || preview.Message == "" {
		t.Errorf("invalid preview = %+v", preview)
	}
}

func TestGetRecent(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	w := serve(router, "GET", "/api/v1/recent", nil)
	body := decode[struct {
		Rows []models.RecordRow `json:"rows"`
	}](t, w)
	if len(body.Rows) != 5 || body.Rows[0].Player != "Gamma" {
		t.Errorf("rows = %+v", body.Rows)
	}

	w = serve(router, "GET", "/api/v1/recent?limit=2", nil)
	body = decode[struct {
		Rows []models.RecordRow `json:"rows"`
	}](t, w)
	if len(body.Rows) != 2 {
		t.Errorf("limited rows = %d", len(body.Rows))
	}

	if w := serve(router, "GET", "/api/v1/recent?limit=500", nil); w.Code != http.StatusBadRequest {
		t.Errorf("oversized limit status = %d", w.Code)
	}
}

func TestMasters(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	w := serve(router, "GET", "/api/v1/categories", nil)
	cats := decode[struct {
		Categories      []models.CountEntry `json:"categories"`
		DefaultCategory string              `json:"default_category"`
	}](t, w)
	if len(cats.Categories) != 2 || cats.Categories[0].Name != "本家" || cats.Categories[0].Count != 4 {
		t.Errorf("categories = %+v", cats.Categories)
	}
	if cats.DefaultCategory != "本家" {
		t.Errorf("default_category = %q", cats.DefaultCategory)
	}

	w = serve(router, "GET", "/api/v1/categories/"+url.PathEscape("本家")+"/courses", nil)
	courses := decode[struct {
		Courses       []models.CountEntry `json:"courses"`
		DefaultCourse string              `json:"default_course"`
	}](t, w)
	if len(courses.Courses) != 2 || courses.DefaultCourse != "No.1" {
		t.Errorf("courses = %+v", courses)
	}

	if w := serve(router, "GET", "/api/v1/categories/nope/courses", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown category status = %d", w.Code)
	}

	w = serve(router, "GET", "/api/v1/versions", nil)
	versions := decode[struct {
		Versions []string `json:"versions"`
		Latest   string   `json:"latest"`
	}](t, w)
	if versions.Latest != "0.24.5~" || versions.Versions[0] != "0.24.5~" {
		t.Errorf("versions = %+v", versions)
	}

	w = serve(router, "GET", "/api/v1/controls", nil)
	controls := decode[[]models.ControlType](t, w)
	if len(controls) != 4 || controls[0].Icon != "👆" {
		t.Errorf("controls = %+v", controls)
	}
}

func TestSearchPlayers(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expected       []string
	}{
		{name: "Substring Ignores Case", query: "q=A", expectedStatus: http.StatusOK, expected: []string{"@alpha", "Gamma", "beta"}},
		{name: "Limit", query: "q=a&limit=2", expectedStatus: http.StatusOK, expected: []string{"@alpha", "Gamma"}},
		{name: "Empty Query", query: "q=", expectedStatus: http.StatusOK, expected: []string{}},
		{name: "Bad Limit", query: "q=a&limit=abc", expectedStatus: http.StatusBadRequest},
		{name: "Limit Too Large", query: "q=a&limit=100", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, "GET", "/api/v1/players?"+tt.query, nil)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if w.Code != http.StatusOK {
				return
			}
			body := decode[struct {
				Players []string `json:"players"`
			}](t, w)
			if len(body.Players) != len(tt.expected) {
				t.Fatalf("players = %v, want %v", body.Players, tt.expected)
			}
			for i := range tt.expected {
				if body.Players[i] != tt.expected[i] {
					t.Errorf("players = %v, want %v", body.Players, tt.expected)
				}
			}
		})
	}
}

func TestPlayerPage(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	w := serve(router, "GET", "/api/v1/players/@alpha", nil)
	overview := decode[models.PlayerOverview](t, w)
	if overview.TotalRecords != 2 || overview.CompletedCourses != 1 {
		t.Errorf("overview = %+v", overview)
	}
	if overview.ProfileURL != "https://x.com/alpha" {
		t.Errorf("profile_url = %q", overview.ProfileURL)
	}

	w = serve(router, "GET", "/api/v1/players/nobody", nil)
	if w.Code != http.StatusOK || decode[models.PlayerOverview](t, w).TotalRecords != 0 {
		t.Errorf("unknown player = %d %s", w.Code, w.Body.String())
	}
}

func TestGetPlayerStamps(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	w := serve(router, "GET", "/api/v1/players/@alpha/stamps", nil)
	rally := decode[models.StampRally](t, w)
	if rally.SelectedVersion != "0.24.5~" {
		t.Errorf("selected_version = %q", rally.SelectedVersion)
	}
	card := rally.Categories[0].Cards[0]
	if !card.HasRecord || card.Time != "11.90" {
		t.Errorf("No.1 card = %+v", card)
	}
	if rally.Categories[0].Cards[1].HasRecord {
		t.Errorf("No.2 should be empty: %+v", rally.Categories[0].Cards[1])
	}

	w = serve(router, "GET", "/api/v1/players/@alpha/stamps?version=0.23", nil)
	rally = decode[models.StampRally](t, w)
	if rally.Categories[0].Cards[0].HasRecord {
		t.Errorf("0.23 grid should be empty for @alpha")
	}

	if w := serve(router, "GET", "/api/v1/players/@alpha/stamps?version=9.9", nil); w.Code != http.StatusBadRequest {
		t.Errorf("unknown version status = %d", w.Code)
	}
}

func TestGetPlayerRecords(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCourse []string
	}{
		{name: "Newest First", query: "", expectedStatus: http.StatusOK, expectedCourse: []string{"No.2", "No.1"}},
		{name: "One Course", query: "category=" + url.QueryEscape("本家") + "&course=No.2", expectedStatus: http.StatusOK, expectedCourse: []string{"No.2"}},
		{name: "Version Facet", query: "versions=0.23", expectedStatus: http.StatusOK, expectedCourse: []string{"No.1"}},
		{name: "Empty Controls", query: "controls=", expectedStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, "GET", "/api/v1/players/beta/records?"+tt.query, nil)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if w.Code != http.StatusOK {
				return
			}
			view := decode[models.PlayerRecordsView](t, w)
			if view.Count != len(tt.expectedCourse) {
				t.Fatalf("rows = %+v", view.Rows)
			}
			for i, c := range tt.expectedCourse {
				if view.Rows[i].Course != c {
					t.Errorf("row %d course = %s, want %s", i, view.Rows[i].Course, c)
				}
			}
		})
	}

	w := serve(router, "GET", "/api/v1/players/beta/records/count?versions=0.23", nil)
	preview := decode[models.CountPreview](t, w)
	if !preview.Valid || *preview.Count != 1 {
		t.Errorf("preview = %+v", preview)
	}
}

func TestChallenges(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})
	base := "/api/v1/challenges/" + url.PathEscape("全コース制覇")

	w := serve(router, "GET", "/api/v1/challenges", nil)
	list := decode[[]models.ChallengeSummary](t, w)
	if len(list) != 2 || list[0].RecordCount != 4 {
		t.Errorf("challenges = %+v", list)
	}

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expected       []string
	}{
		{name: "Earliest First", path: base, expectedStatus: http.StatusOK, expected: []string{"beta", "Gamma", "@alpha", "delta"}},
		{name: "Rank Minimum", path: base + "?rank=A", expectedStatus: http.StatusOK, expected: []string{"beta", "@alpha"}},
		{name: "Approved At Least C", path: base + "?rank=C&approval=approved", expectedStatus: http.StatusOK, expected: []string{"beta", "@alpha"}},
		{name: "Unknown Rank", path: base + "?rank=X", expectedStatus: http.StatusBadRequest},
		{name: "Bad Approval", path: base + "?approval=maybe", expectedStatus: http.StatusBadRequest},
		{name: "Unknown Challenge", path: "/api/v1/challenges/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, "GET", tt.path, nil)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.expectedStatus, w.Body.String())
			}
			if w.Code != http.StatusOK {
				return
			}
			view := decode[models.ChallengeView](t, w)
			if !view.HasRanks || view.Count != len(tt.expected) {
				t.Fatalf("view = %+v", view)
			}
			for i, p := range tt.expected {
				if view.Rows[i].Player != p || view.Rows[i].Position != i+1 {
					t.Errorf("row %d = %+v, want %s", i, view.Rows[i], p)
				}
			}
		})
	}

	w = serve(router, "GET", base+"/count?rank=A", nil)
	preview := decode[models.CountPreview](t, w)
	if preview.Label != "達成者数: 2人" {
		t.Errorf("preview = %+v", preview)
	}
}

func TestSnapshotUnavailable(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{}})

	for _, path := range []string{"/api/v1/ranking", "/api/v1/categories", "/api/v1/players/beta", "/api/v1/challenges", "/ready"} {
		if w := serve(router, "GET", path, nil); w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s status = %d, want 503", path, w.Code)
		}
	}
	if w := serve(router, "GET", "/health", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
}

func TestReady(t *testing.T) {
	router := newRouter(Config{Snapshot: &MockSnapshot{ds: testDataset()}})
	w := serve(router, "GET", "/ready", nil)
	body := decode[map[string]interface{}](t, w)
	if w.Code != http.StatusOK || body["ready"] != true || body["records"] != float64(5) {
		t.Errorf("ready = %d %v", w.Code, body)
	}
}

func TestReloadSnapshot(t *testing.T) {
	ds := testDataset()

	tests := []struct {
		name           string
		adminToken     string
		header         map[string]string
		reloadErr      error
		expectedStatus int
		expectedCalls  int
	}{
		{name: "Disabled", adminToken: "", header: map[string]string{"X-Admin-Token": "x"}, expectedStatus: http.StatusNotFound},
		{name: "Missing Token", adminToken: "secret", expectedStatus: http.StatusUnauthorized},
		{name: "Wrong Token", adminToken: "secret", header: map[string]string{"X-Admin-Token": "guess"}, expectedStatus: http.StatusUnauthorized},
		{name: "Bearer Token", adminToken: "secret", header: map[string]string{"Authorization": "Bearer secret"}, expectedStatus: http.StatusOK, expectedCalls: 1},
		{name: "Reload Failure", adminToken: "secret", header: map[string]string{"X-Admin-Token": "secret"}, reloadErr: errors.New("fetch failed"), expectedStatus: http.StatusBadGateway, expectedCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reloader := &MockReloader{ReloadFunc: func(ctx context.Context) (*logic.Dataset, error) {
				if tt.reloadErr != nil {
					return nil, tt.reloadErr
				}
				return ds, nil
			}}
			router := newRouter(Config{
				Snapshot:   &MockSnapshot{ds: ds},
				Reloader:   reloader,
				AdminToken: tt.adminToken,
			})

			w := serve(router, "POST", "/api/v1/admin/reload", tt.header)
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if reloader.calls != tt.expectedCalls {
				t.Errorf("reload calls = %d, want %d", reloader.calls, tt.expectedCalls)
			}
		})
	}
}

func TestResponseCache(t *testing.T) {
	snap := &MockSnapshot{ds: testDataset()}
	redisMock := &MockRedis{data: map[string]string{}}
	router := newRouter(Config{
		Snapshot: snap,
		Cache:    cache.New(redisMock, time.Minute, zap.NewNop()),
	})

	first := serve(router, "GET", "/api/v1/ranking?mode=all", nil)
	if first.Header().Get("X-Cache") != "MISS" {
		t.Errorf("first X-Cache = %q", first.Header().Get("X-Cache"))
	}
	second := serve(router, "GET", "/api/v1/ranking?mode=all", nil)
	if second.Header().Get("X-Cache") != "HIT" {
		t.Errorf("second X-Cache = %q", second.Header().Get("X-Cache"))
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from computed body")
	}

	// A new snapshot generation must not be served from the old entries.
	snap.ds = testDataset()
	third := serve(router, "GET", "/api/v1/ranking?mode=all", nil)
	if third.Header().Get("X-Cache") != "MISS" {
		t.Errorf("after reload X-Cache = %q", third.Header().Get("X-Cache"))
	}

	// Errors are never cached.
	serve(router, "GET", "/api/v1/ranking?versions=", nil)
	if w := serve(router, "GET", "/api/v1/ranking?versions=", nil); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("error response status = %d", w.Code)
	}
}
