package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/service"
	"github.com/lifesteward/internal/session"
)

type planRequest struct {
	Goal           string `form:"goal"`
	TimePreference string `form:"time_preference"`
	PlanType       string `form:"plan_type"`
	PreferredDays  string `form:"user_preferred_days"`
}

type estimateRequest struct {
	Goal          string `form:"goal"`
	PreferredDays string `form:"user_preferred_days"`
	Auto          bool   `form:"auto"`
}

// ListPlans 用缓存重新渲染计划列表
func (a *API) ListPlans(c *gin.Context) {
	a.renderHTML(c, newFeedback(), http.StatusOK, "plans_list", nil)
}

// ShowCreatePlan 渲染创建计划弹窗
func (a *API) ShowCreatePlan(c *gin.Context) {
	a.renderHTML(c, newFeedback(), http.StatusOK, "create_plan_modal", gin.H{"Estimate": (*service.DayEstimateView)(nil)})
}

// CreatePlan 创建计划，成功后关闭弹窗并在稍后打开 AI 问答
func (a *API) CreatePlan(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req planRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	form := service.CreatePlanForm{
		Goal:           req.Goal,
		TimePreference: req.TimePreference,
		PlanType:       req.PlanType,
		PreferredDays:  req.PreferredDays,
	}
	if _, err := a.plans.Create(c.Request.Context(), ws, fb, form); err != nil {
		respondError(c, fb, err)
		return
	}

	planType := model.PlanType(req.PlanType)
	if !planType.Valid() {
		planType = model.PlanTypeDaily
	}
	fb.closeModal(mainModal)
	fb.trigger(eventPlansChanged, nil)
	fb.trigger(eventPlanCreated, gin.H{"goal": strings.TrimSpace(req.Goal), "plan_type": planType})
	respondNoContent(c, fb)
}

// EstimateDays 返回 AI 建议天数及与期望天数的差异提示
func (a *API) EstimateDays(c *gin.Context) {
	fb := newFeedback()

	var req estimateRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	estimate, err := a.plans.EstimateDays(c.Request.Context(), fb, req.Goal, req.PreferredDays, !req.Auto)
	if err != nil && service.IsValidation(err) {
		respondError(c, fb, err)
		return
	}

	a.renderHTML(c, fb, http.StatusOK, "day_estimate", gin.H{"Estimate": &estimate})
}

// PlanToTodos 把计划任务转换为待办事项
func (a *API) PlanToTodos(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	planID, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的计划ID")
		return
	}

	if err := a.plans.ToTodos(c.Request.Context(), ws, fb, a.todos, planID, confirmed(c)); err != nil {
		respondError(c, fb, err)
		return
	}

	if ws.Section == session.SectionTodos {
		fb.trigger(eventTodosChanged, nil)
	}
	respondNoContent(c, fb)
}
