package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/apiclient"
	"github.com/lifesteward/internal/handler"
	"github.com/lifesteward/internal/localstore"
	"github.com/lifesteward/internal/session"
	"github.com/lifesteward/internal/view"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *session.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/dashboard/1":
			io.WriteString(w, `{"active_plans":1,"completed_tasks":2,"completion_rate":0.5,"total_todos":0,"completed_todos":0,"recent_activities":[]}`)
		case "/plans/":
			io.WriteString(w, `[]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail":"not found"}`)
		}
	}))
	t.Cleanup(backend.Close)

	renderer, err := view.New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	registry := session.NewRegistry(time.Hour)
	api := handler.NewAPI(handler.Deps{
		Planner:  apiclient.New(backend.URL, time.Second),
		Store:    localstore.Open(t.TempDir()),
		Registry: registry,
		UserID:   1,
	})
	return SetupRouter(api, renderer, "test-secret"), registry
}

func serve(r *gin.Engine, method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestPing(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := serve(r, http.MethodGet, "/ping", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "pong") {
		t.Fatalf("unexpected response %d %s", rr.Code, rr.Body.String())
	}
}

func TestServesStaticAssets(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := serve(r, http.MethodGet, "/static/app.js", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "EventSource") {
		t.Fatal("unexpected app.js content")
	}
}

func TestIndexRendersDashboard(t *testing.T) {
	r, _ := setupTestRouter(t)

	rr := serve(r, http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `data-section="dashboard"`) || !strings.Contains(body, `id="active-plans">1<`) {
		t.Fatalf("dashboard not rendered:\n%s", body)
	}
}

func TestWorkspacePersistsAcrossRequests(t *testing.T) {
	r, registry := setupTestRouter(t)

	rr := serve(r, http.MethodGet, "/sections/bogus", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for unknown section, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	rr = serve(r, http.MethodGet, "/sections/plans", cookies)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	rr = serve(r, http.MethodGet, "/dashboard/refresh", cookies)
	if rr.Code != 286 {
		t.Fatalf("expected polling to stop after leaving the dashboard, got %d", rr.Code)
	}

	if registry.Len() != 1 {
		t.Fatalf("expected a single workspace, got %d", registry.Len())
	}

	rr = serve(r, http.MethodGet, "/dashboard/refresh", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("a fresh workspace starts on the dashboard, got %d", rr.Code)
	}
	if registry.Len() != 2 {
		t.Fatalf("expected a second workspace, got %d", registry.Len())
	}
}
