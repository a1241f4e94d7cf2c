package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/service"
	"github.com/lifesteward/internal/session"
)

// DefaultDashboardRefresh 是仪表板自动刷新的默认间隔
const DefaultDashboardRefresh = 30 * time.Second

// Deps 是构造 API 所需的外部依赖
type Deps struct {
	Planner          service.PlannerAPI
	Store            service.LocalStore
	Dispatcher       *service.ReminderDispatcher
	Hub              *service.NotificationHub
	Registry         *session.Registry
	UserID           int
	DashboardRefresh time.Duration
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	pages     *service.PageService
	dashboard *service.DashboardService
	plans     *service.PlanService
	todos     *service.TodoService
	analytics *service.AnalyticsService
	details   *service.PlanDetailService
	subtasks  *service.SubtaskService
	questions *service.QuestionService
	reminders *service.ReminderService

	registry *session.Registry
	hub      *service.NotificationHub
	userID   int
	refresh  time.Duration
}

// NewAPI constructs a handler set with shared services.
func NewAPI(deps Deps) *API {
	if deps.Registry == nil {
		deps.Registry = session.NewRegistry(0)
	}
	if deps.Hub == nil {
		deps.Hub = service.NewNotificationHub()
	}
	if deps.DashboardRefresh <= 0 {
		deps.DashboardRefresh = DefaultDashboardRefresh
	}

	dashboard := service.NewDashboardService(deps.Planner, deps.UserID)
	plans := service.NewPlanService(deps.Planner, deps.UserID)
	todos := service.NewTodoService(deps.Planner, deps.UserID)
	analytics := service.NewAnalyticsService(deps.Planner, deps.UserID)

	return &API{
		pages:     service.NewPageService(dashboard, plans, todos, analytics),
		dashboard: dashboard,
		plans:     plans,
		todos:     todos,
		analytics: analytics,
		details:   service.NewPlanDetailService(deps.Planner, deps.UserID, plans, dashboard),
		subtasks:  service.NewSubtaskService(deps.Planner, deps.UserID),
		questions: service.NewQuestionService(deps.Planner, deps.Store, deps.UserID),
		reminders: service.NewReminderService(deps.Planner, deps.Store, deps.Dispatcher, deps.UserID),
		registry:  deps.Registry,
		hub:       deps.Hub,
		userID:    deps.UserID,
		refresh:   deps.DashboardRefresh,
	}
}

// Registry 暴露会话注册表，供后台清理使用
func (a *API) Registry() *session.Registry {
	return a.registry
}

// sectionData 用会话缓存组装视图数据，渲染本身不发起任何请求
func (a *API) sectionData(ws *session.Workspace) gin.H {
	return gin.H{
		"Section":        string(ws.Section),
		"RefreshSeconds": int(a.refresh / time.Second),
		"Dashboard":      ws.Dashboard,
		"Plans":          ws.Plans,
		"Todos":          ws.Todos,
		"Filter":         ws.TodoFilter,
		"Charts":         a.analytics.Cached(ws),
	}
}

// renderHTML 先输出反馈头，再渲染模板；data 中缺失的视图字段由会话缓存补齐
func (a *API) renderHTML(c *gin.Context, fb *htmxFeedback, status int, name string, data gin.H) {
	payload := a.sectionData(workspace(c))
	for key, value := range data {
		payload[key] = value
	}
	fb.flush(c)
	c.HTML(status, name, payload)
}
