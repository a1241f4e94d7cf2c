package service

import (
	"context"
	"log"

	"github.com/lifesteward/internal/session"
)

// DashboardService 加载仪表板统计与最近活动
type DashboardService struct {
	api    PlannerAPI
	userID int
}

// NewDashboardService 构造 DashboardService
func NewDashboardService(api PlannerAPI, userID int) *DashboardService {
	return &DashboardService{api: api, userID: userID}
}

// Load 拉取仪表板数据并整体替换会话中的副本
func (s *DashboardService) Load(ctx context.Context, ws *session.Workspace, fb Feedback) error {
	fb.ShowLoading()
	defer fb.HideLoading()

	data, err := s.api.Dashboard(ctx, s.userID)
	if err != nil {
		log.Printf("[DASHBOARD] load: %v", err)
		fb.Toast(ToastError, "加载仪表板失败")
		return err
	}

	ws.Dashboard = data
	return nil
}

// Refresh 仅在仪表板是当前视图时重新加载，返回是否仍需继续轮询
func (s *DashboardService) Refresh(ctx context.Context, ws *session.Workspace, fb Feedback) (bool, error) {
	if ws.Section != session.SectionDashboard {
		return false, nil
	}
	return true, s.Load(ctx, ws, fb)
}
