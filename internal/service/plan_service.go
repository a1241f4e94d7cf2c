package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

// 天数差异超过该阈值时提示用户
const dayDiscrepancyThreshold = 3

// PlanService 负责计划列表、创建计划与天数估算
type PlanService struct {
	api    PlannerAPI
	userID int
}

// NewPlanService 构造 PlanService
func NewPlanService(api PlannerAPI, userID int) *PlanService {
	return &PlanService{api: api, userID: userID}
}

// CreatePlanForm 是创建计划弹窗提交的原始字段
type CreatePlanForm struct {
	Goal           string
	TimePreference string
	PlanType       string
	PreferredDays  string
}

// Load 拉取计划列表并整体替换会话中的副本
func (s *PlanService) Load(ctx context.Context, ws *session.Workspace, fb Feedback) error {
	fb.ShowLoading()
	defer fb.HideLoading()

	plans, err := s.api.ListPlans(ctx, s.userID)
	if err != nil {
		log.Printf("[PLAN] load plans: %v", err)
		fb.Toast(ToastError, "加载计划失败")
		return err
	}

	ws.Plans = plans
	return nil
}

// BuildPlanInput 校验表单并生成请求体
func BuildPlanInput(form CreatePlanForm) (model.PlanInput, string) {
	goal := strings.TrimSpace(form.Goal)
	if goal == "" {
		return model.PlanInput{}, "请填写目标描述"
	}

	planType := model.PlanType(strings.TrimSpace(form.PlanType))
	if !planType.Valid() {
		planType = model.PlanTypeDaily
	}

	input := model.PlanInput{
		Goal:           goal,
		TimePreference: strings.TrimSpace(form.TimePreference),
		PlanType:       planType,
	}

	if planType == model.PlanTypeCustom {
		days, err := strconv.Atoi(strings.TrimSpace(form.PreferredDays))
		if err != nil || days < 1 {
			return model.PlanInput{}, "请输入有效的天数"
		}
		input.DurationDays = &days
		input.UserPreferredDays = &days
	}

	return input, ""
}

// Create 校验后创建计划并刷新列表
func (s *PlanService) Create(ctx context.Context, ws *session.Workspace, fb Feedback, form CreatePlanForm) (*model.Plan, error) {
	input, problem := BuildPlanInput(form)
	if problem != "" {
		return nil, invalid(fb, problem)
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	plan, err := s.api.CreatePlan(ctx, s.userID, input)
	if err != nil {
		log.Printf("[PLAN] create plan: %v", err)
		fb.Toast(ToastError, "创建计划失败: "+err.Error())
		return nil, err
	}

	fb.Toast(ToastSuccess, "计划创建成功！")
	if err := s.Load(ctx, ws, fb); err != nil {
		log.Printf("[PLAN] reload after create: %v", err)
	}
	return plan, nil
}

// DayBanner 是自定义计划天数与 AI 建议差异的提示
type DayBanner struct {
	Show  bool
	Level string
	Text  string
}

// DayDiscrepancy 仅在差值超过阈值时给出提示；用户天数更少时提示过紧，否则提示宽松
func DayDiscrepancy(userDays, aiDays int) DayBanner {
	diff := userDays - aiDays
	if diff < 0 {
		diff = -diff
	}
	if diff <= dayDiscrepancyThreshold {
		return DayBanner{}
	}
	if userDays < aiDays {
		return DayBanner{
			Show:  true,
			Level: "warning",
			Text:  fmt.Sprintf("您期望的%d天可能过于紧张，AI建议至少%d天完成。", userDays, aiDays),
		}
	}
	return DayBanner{
		Show:  true,
		Level: "info",
		Text:  fmt.Sprintf("您期望的%d天较为宽松，可以安排更深入的学习内容。", userDays),
	}
}

// DayEstimateView 是估算结果在表单中的展示数据
type DayEstimateView struct {
	AIDays int
	Failed bool
	Banner DayBanner
}

// Label 返回 AI 建议天数的展示文本
func (v DayEstimateView) Label() string {
	if v.Failed {
		return "估算失败"
	}
	if v.AIDays <= 0 {
		return "点击估算获取"
	}
	return fmt.Sprintf("%d天", v.AIDays)
}

// EstimateDays 请求 AI 估算天数；manual 为 true 表示用户主动点击，会展示加载与提示
func (s *PlanService) EstimateDays(ctx context.Context, fb Feedback, goal, preferredDays string, manual bool) (DayEstimateView, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		if manual {
			return DayEstimateView{}, invalid(fb, "请先填写目标描述")
		}
		return DayEstimateView{}, nil
	}

	if manual {
		fb.ShowLoading()
		defer fb.HideLoading()
	}

	logAIExchange("estimate", "request", goal)
	estimate, err := s.api.EstimateDays(ctx, goal)
	if err != nil {
		log.Printf("[PLAN] estimate days: %v", err)
		if manual {
			fb.Toast(ToastError, "AI估算失败")
		}
		return DayEstimateView{Failed: true}, err
	}

	logAIExchange("estimate", "response", strconv.Itoa(estimate.AIEstimatedDays), estimate.Reasoning)

	view := DayEstimateView{AIDays: estimate.AIEstimatedDays}
	if days, err := strconv.Atoi(strings.TrimSpace(preferredDays)); err == nil && days > 0 {
		view.Banner = DayDiscrepancy(days, estimate.AIEstimatedDays)
	}
	if manual {
		fb.Toast(ToastSuccess, "AI估算完成")
	}
	return view, nil
}

// ToTodos 将计划任务转换为待办事项，需用户确认
func (s *PlanService) ToTodos(ctx context.Context, ws *session.Workspace, fb Feedback, todos *TodoService, planID int, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.PlanToTodos(ctx, planID); err != nil {
		log.Printf("[PLAN] plan %d to todos: %v", planID, err)
		fb.Toast(ToastError, "转换失败: "+err.Error())
		return err
	}

	fb.Toast(ToastSuccess, "计划任务已成功转换为待办事项！")
	if ws.Section == session.SectionTodos && todos != nil {
		if err := todos.Load(ctx, ws, fb, ws.TodoFilter); err != nil {
			log.Printf("[PLAN] reload todos after conversion: %v", err)
		}
	}
	return nil
}
