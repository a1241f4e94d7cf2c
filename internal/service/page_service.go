package service

import (
	"context"
	"log"

	"github.com/lifesteward/internal/session"
)

// PageService 负责切换顶层视图并触发对应数据的加载
type PageService struct {
	dashboard *DashboardService
	plans     *PlanService
	todos     *TodoService
	analytics *AnalyticsService
}

// NewPageService 组合四个视图的加载器
func NewPageService(dashboard *DashboardService, plans *PlanService, todos *TodoService, analytics *AnalyticsService) *PageService {
	return &PageService{dashboard: dashboard, plans: plans, todos: todos, analytics: analytics}
}

// ShowSection 切换到 name 对应的视图并加载数据。
// 未知视图返回 false，不改变当前视图也不加载任何数据。
// 加载失败已由各加载器提示，视图依然切换。
func (s *PageService) ShowSection(ctx context.Context, ws *session.Workspace, fb Feedback, name string) (session.Section, bool) {
	section, ok := session.ParseSection(name)
	if !ok {
		return "", false
	}

	ws.Section = section
	if err := s.Load(ctx, ws, fb, section); err != nil {
		log.Printf("[PAGE] load section %s: %v", section, err)
	}
	return section, true
}

// Load 加载指定视图的数据
func (s *PageService) Load(ctx context.Context, ws *session.Workspace, fb Feedback, section session.Section) error {
	switch section {
	case session.SectionDashboard:
		return s.dashboard.Load(ctx, ws, fb)
	case session.SectionPlans:
		return s.plans.Load(ctx, ws, fb)
	case session.SectionTodos:
		return s.todos.Load(ctx, ws, fb, ws.TodoFilter)
	case session.SectionAnalytics:
		_, err := s.analytics.Load(ctx, ws, fb)
		return err
	}
	return nil
}
