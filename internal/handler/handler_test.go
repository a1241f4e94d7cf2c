package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/apiclient"
	"github.com/lifesteward/internal/localstore"
	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/service"
	"github.com/lifesteward/internal/session"
	"github.com/lifesteward/internal/view"
)

// fakeBackend 按 "METHOD /path" 返回固定 JSON，并记录收到的请求
type fakeBackend struct {
	mu       sync.Mutex
	routes   map[string]string
	requests []string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	b.mu.Lock()
	b.requests = append(b.requests, key)
	body, ok := b.routes[key]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"not found"}`)
		return
	}
	io.WriteString(w, body)
}

func (b *fakeBackend) called(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == key {
			n++
		}
	}
	return n
}

type testEnv struct {
	api     *API
	ws      *session.Workspace
	hub     *service.NotificationHub
	backend *fakeBackend
	engine  *gin.Engine
}

func newTestEnv(t *testing.T, routes map[string]string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{routes: routes}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	renderer, err := view.New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	hub := service.NewNotificationHub()
	api := NewAPI(Deps{
		Planner: apiclient.New(srv.URL, time.Second),
		Store:   localstore.Open(t.TempDir()),
		Hub:     hub,
		UserID:  1,
	})

	ws := session.NewWorkspace("test")
	engine := gin.New()
	engine.SetHTMLTemplate(renderer.Template())
	engine.Use(func(c *gin.Context) {
		c.Set(workspaceContextKey, ws)
		c.Next()
	})

	return &testEnv{api: api, ws: ws, hub: hub, backend: backend, engine: engine}
}

func (e *testEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rr := httptest.NewRecorder()
	e.engine.ServeHTTP(rr, req)
	return rr
}

func triggers(t *testing.T, rr *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	raw := rr.Header().Get("HX-Trigger")
	if raw == "" {
		return nil
	}
	var events map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		t.Fatalf("invalid HX-Trigger %q: %v", raw, err)
	}
	return events
}

func toasts(t *testing.T, rr *httptest.ResponseRecorder) []service.Toast {
	t.Helper()
	raw, ok := triggers(t, rr)[eventShowToast]
	if !ok {
		return nil
	}
	var payload struct {
		Toasts []service.Toast `json:"toasts"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("invalid toast payload: %v", err)
	}
	return payload.Toasts
}

func TestShowSectionUnknownDoesNothing(t *testing.T) {
	env := newTestEnv(t, nil)
	env.engine.GET("/sections/:name", env.api.ShowSection)
	env.ws.Section = session.SectionPlans

	rr := env.do(http.MethodGet, "/sections/settings", nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if env.ws.Section != session.SectionPlans {
		t.Fatalf("section changed to %q", env.ws.Section)
	}
	if len(env.backend.requests) != 0 {
		t.Fatalf("unexpected backend calls: %v", env.backend.requests)
	}
}

func TestShowSectionRendersPlans(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /plans/": `[{"id":1,"title":"Go 学习计划","goal":"并发","plan_type":"daily","status":"active","tasks":[]}]`,
	})
	env.engine.GET("/sections/:name", env.api.ShowSection)

	rr := env.do(http.MethodGet, "/sections/plans", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Go 学习计划") || !strings.Contains(rr.Body.String(), `data-section="plans"`) {
		t.Fatalf("plans section not rendered:\n%s", rr.Body.String())
	}
	if env.ws.Section != session.SectionPlans || env.backend.called("GET /plans/") != 1 {
		t.Fatalf("unexpected state: section=%q calls=%v", env.ws.Section, env.backend.requests)
	}
}

func TestRefreshDashboardStopsPollingOutsideDashboard(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /dashboard/1": `{"active_plans":3,"completed_tasks":5,"completion_rate":0.5,"total_todos":2,"completed_todos":1,"recent_activities":[]}`,
	})
	env.engine.GET("/dashboard/refresh", env.api.RefreshDashboard)
	env.ws.Section = session.SectionTodos

	rr := env.do(http.MethodGet, "/dashboard/refresh", nil)
	if rr.Code != statusStopPolling {
		t.Fatalf("expected %d, got %d", statusStopPolling, rr.Code)
	}
	if env.backend.called("GET /dashboard/1") != 0 {
		t.Fatal("dashboard must not be fetched outside its section")
	}

	env.ws.Section = session.SectionDashboard
	rr = env.do(http.MethodGet, "/dashboard/refresh", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `id="active-plans">3<`) {
		t.Fatalf("stats not rendered:\n%s", rr.Body.String())
	}
}

func TestCreatePlanTriggersFollowUp(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"POST /plans/": `{"id":5,"title":"新计划","goal":"学习Go","plan_type":"weekly","status":"active"}`,
		"GET /plans/":  `[{"id":5,"title":"新计划","goal":"学习Go","plan_type":"weekly","status":"active","tasks":[]}]`,
	})
	env.engine.POST("/plans", env.api.CreatePlan)

	rr := env.do(http.MethodPost, "/plans", url.Values{"goal": {" 学习Go "}, "plan_type": {"weekly"}})

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	events := triggers(t, rr)
	if string(events[eventCloseModal]) != `{"modal":"app-modal"}` {
		t.Fatalf("unexpected closeModal: %s", events[eventCloseModal])
	}
	if _, ok := events[eventPlansChanged]; !ok {
		t.Fatal("missing plansChanged")
	}
	var created struct {
		Goal     string `json:"goal"`
		PlanType string `json:"plan_type"`
	}
	if err := json.Unmarshal(events[eventPlanCreated], &created); err != nil {
		t.Fatalf("invalid planCreated: %v", err)
	}
	if created.Goal != "学习Go" || created.PlanType != "weekly" {
		t.Fatalf("unexpected planCreated: %+v", created)
	}
	got := toasts(t, rr)
	if len(got) != 1 || got[0].Level != service.ToastSuccess || got[0].Message != "计划创建成功！" {
		t.Fatalf("unexpected toasts: %+v", got)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "bi-check-circle text-success") {
		t.Fatalf("toast icon missing: %s", rr.Header().Get("HX-Trigger"))
	}
	if len(env.ws.Plans) != 1 {
		t.Fatalf("plans not reloaded: %+v", env.ws.Plans)
	}
}

func TestCreatePlanRequiresGoal(t *testing.T) {
	env := newTestEnv(t, nil)
	env.engine.POST("/plans", env.api.CreatePlan)

	rr := env.do(http.MethodPost, "/plans", url.Values{"goal": {"  "}, "plan_type": {"daily"}})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if got := toasts(t, rr); len(got) != 1 || got[0].Level != service.ToastError {
		t.Fatalf("expected one error toast, got %+v", got)
	}
	if _, ok := triggers(t, rr)[eventCloseModal]; ok {
		t.Fatal("modal must stay open on validation errors")
	}
	if len(env.backend.requests) != 0 {
		t.Fatalf("unexpected backend calls: %v", env.backend.requests)
	}
}

func TestDeleteTodoRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"DELETE /todos/3": ``,
		"GET /todos/":     `[]`,
	})
	env.engine.DELETE("/todos/:id", env.api.DeleteTodo)

	rr := env.do(http.MethodDelete, "/todos/3", nil)
	if rr.Code != http.StatusNoContent || rr.Header().Get("HX-Trigger") != "" {
		t.Fatalf("unconfirmed delete should be a silent no-op, got %d %q", rr.Code, rr.Header().Get("HX-Trigger"))
	}
	if env.backend.called("DELETE /todos/3") != 0 {
		t.Fatal("backend called without confirmation")
	}

	rr = env.do(http.MethodDelete, "/todos/3?confirmed=true", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if env.backend.called("DELETE /todos/3") != 1 {
		t.Fatal("confirmed delete did not reach the backend")
	}
	if _, ok := triggers(t, rr)[eventTodosChanged]; !ok {
		t.Fatal("missing todosChanged")
	}
}

func TestToggleTodoUnknownID(t *testing.T) {
	env := newTestEnv(t, nil)
	env.engine.POST("/todos/:id/toggle", env.api.ToggleTodo)

	rr := env.do(http.MethodPost, "/todos/42/toggle", url.Values{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	rr = env.do(http.MethodPost, "/todos/abc/toggle", url.Values{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestToggleTodoUsesCachedState(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"PUT /todos/7": `{}`,
		"GET /todos/":  `[{"id":7,"title":"买菜","priority":"中","is_completed":true}]`,
	})
	env.engine.POST("/todos/:id/toggle", env.api.ToggleTodo)
	env.ws.Todos = []model.Todo{{ID: 7, Title: "买菜", Priority: model.PriorityMedium}}

	rr := env.do(http.MethodPost, "/todos/7/toggle", url.Values{})

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if env.backend.called("PUT /todos/7") != 1 {
		t.Fatalf("unexpected backend calls: %v", env.backend.requests)
	}
	if len(env.ws.Todos) != 1 || !env.ws.Todos[0].IsCompleted {
		t.Fatalf("todos not reloaded: %+v", env.ws.Todos)
	}
}

func TestToggleTaskRerendersDetail(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"PUT /tasks/10": `{}`,
	})
	env.engine.POST("/plans/detail/tasks/:taskId/toggle", env.api.ToggleTask)
	env.ws.Detail = session.NewPlanDetail(model.Plan{ID: 1, Title: "计划"}, []model.Task{
		{ID: 10, Description: "阅读文档", Status: model.TaskStatusPending},
	})

	rr := env.do(http.MethodPost, "/plans/detail/tasks/10/toggle", url.Values{})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "标记未完成") {
		t.Fatalf("task not shown as completed:\n%s", rr.Body.String())
	}
	if _, ok := triggers(t, rr)[eventPlansChanged]; !ok {
		t.Fatal("missing plansChanged")
	}
	if task, _ := env.ws.Detail.Task(10); task.Status != model.TaskStatusCompleted {
		t.Fatalf("local copy not updated: %+v", task)
	}
}

func TestDetailActionsWithoutOpenPlan(t *testing.T) {
	env := newTestEnv(t, nil)
	env.engine.POST("/plans/detail/edit", env.api.PlanDetailEditMode)

	rr := env.do(http.MethodPost, "/plans/detail/edit", url.Values{})

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if string(triggers(t, rr)[eventCloseModal]) != `{"modal":"app-modal"}` {
		t.Fatal("stale detail modal should be closed")
	}
}

func TestQuestionFlow(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"GET /ai/follow-up-questions": `{"questions":["每天能投入多少时间？","是否有基础？"]}`,
	})
	env.engine.GET("/ai/questions", env.api.ShowQuestions)
	env.engine.POST("/ai/answers/:index", env.api.AnswerQuestion)
	env.engine.POST("/ai/submit", env.api.SubmitAnswers)

	rr := env.do(http.MethodGet, "/ai/questions?goal="+url.QueryEscape("学习Go")+"&plan_type=weekly", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "是否有基础？") {
		t.Fatalf("questions not rendered (%d):\n%s", rr.Code, rr.Body.String())
	}

	rr = env.do(http.MethodPost, "/ai/answers/1", url.Values{"answer": {"有一点"}})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "1/2") {
		t.Fatalf("progress not rendered (%d):\n%s", rr.Code, rr.Body.String())
	}

	rr = env.do(http.MethodPost, "/ai/submit", url.Values{})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if string(triggers(t, rr)[eventCloseModal]) != `{"modal":"sub-modal"}` {
		t.Fatalf("question modal not closed: %s", rr.Header().Get("HX-Trigger"))
	}
}

func TestSetupRemindersRequiresEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	env.engine.GET("/reminders/:planId", env.api.ShowReminder)
	env.engine.POST("/reminders", env.api.SetupReminders)

	rr := env.do(http.MethodGet, "/reminders/7", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `value="7"`) {
		t.Fatalf("reminder modal not rendered (%d)", rr.Code)
	}

	rr = env.do(http.MethodPost, "/reminders", url.Values{
		"email_reminder":     {"true"},
		"daily_start_time":   {"08:00"},
		"daily_summary_time": {"21:00"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if got := toasts(t, rr); len(got) != 1 || got[0].Message != "请输入邮箱地址" {
		t.Fatalf("unexpected toasts: %+v", got)
	}
	if len(env.backend.requests) != 0 {
		t.Fatalf("unexpected backend calls: %v", env.backend.requests)
	}
}

func TestConfirmedReadsFormAndQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		target string
		form   string
		want   bool
	}{
		{"/x", "confirmed=true", true},
		{"/x?confirmed=true", "", true},
		{"/x?confirmed=nope", "", false},
		{"/x", "", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, tc.target, strings.NewReader(tc.form))
		c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if got := confirmed(c); got != tc.want {
			t.Fatalf("confirmed(%s, %q) = %v, want %v", tc.target, tc.form, got, tc.want)
		}
	}
}
