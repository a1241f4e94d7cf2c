package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

// CategoryPalette 是分类环形图的配色，分类多于颜色时循环使用
var CategoryPalette = []string{"#0d6efd", "#198754", "#ffc107", "#dc3545", "#0dcaf0"}

// AnalyticsService 负责拉取统计数据并生成图表配置。
type AnalyticsService struct {
	api    PlannerAPI
	userID int
}

// NewAnalyticsService 创建 AnalyticsService
func NewAnalyticsService(api PlannerAPI, userID int) *AnalyticsService {
	return &AnalyticsService{api: api, userID: userID}
}

// LineChart 是完成趋势折线图的数据
type LineChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// DoughnutChart 是分类分布环形图的数据
type DoughnutChart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// Charts 是一次渲染的完整图表配置。
// Generation 每次加载都会变化，浏览器据此销毁旧图表后重新创建。
type Charts struct {
	Generation int           `json:"generation"`
	Completion LineChart     `json:"completion"`
	Category   DoughnutChart `json:"category"`
}

// Load 拉取统计数据并生成新一代图表配置
func (s *AnalyticsService) Load(ctx context.Context, ws *session.Workspace, fb Feedback) (*Charts, error) {
	fb.ShowLoading()
	defer fb.HideLoading()

	analytics, err := s.api.Analytics(ctx, s.userID)
	if err != nil {
		log.Printf("[ANALYTICS] load: %v", err)
		fb.Toast(ToastError, "加载分析数据失败")
		return nil, err
	}

	ws.Analytics = analytics
	ws.ChartGeneration++
	charts := BuildCharts(*analytics, ws.ChartGeneration)
	return &charts, nil
}

// Cached 用最近一次加载的数据重建图表配置，尚未加载时返回 nil
func (s *AnalyticsService) Cached(ws *session.Workspace) *Charts {
	if ws.Analytics == nil {
		return nil
	}
	charts := BuildCharts(*ws.Analytics, ws.ChartGeneration)
	return &charts
}

// BuildCharts 将统计数据转换为两个图表的配置
func BuildCharts(analytics model.Analytics, generation int) Charts {
	charts := Charts{
		Generation: generation,
		Completion: LineChart{Labels: []string{}, Values: []int{}},
		Category:   DoughnutChart{Labels: []string{}, Values: []int{}, Colors: []string{}},
	}

	for _, point := range analytics.DailyCompletion {
		charts.Completion.Labels = append(charts.Completion.Labels, ShortDateLabel(point.Date))
		charts.Completion.Values = append(charts.Completion.Values, point.Completed)
	}

	for i, item := range analytics.CategoryDistribution {
		charts.Category.Labels = append(charts.Category.Labels, item.Name)
		charts.Category.Values = append(charts.Category.Values, item.Count)
		charts.Category.Colors = append(charts.Category.Colors, CategoryPalette[i%len(CategoryPalette)])
	}
	return charts
}

var shortDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ShortDateLabel 把日期转换为 "1月2日" 形式，无法解析时原样返回
func ShortDateLabel(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range shortDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
		}
	}
	return raw
}
