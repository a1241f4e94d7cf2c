package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/service"
)

type taskRequest struct {
	Description string `form:"description"`
	Time        string `form:"time"`
	Duration    string `form:"duration"`
	Priority    string `form:"priority"`
	Status      string `form:"status"`
	Reason      string `form:"reason"`
}

func (r taskRequest) form() service.TaskForm {
	return service.TaskForm{
		Description: r.Description,
		Time:        r.Time,
		Duration:    r.Duration,
		Priority:    r.Priority,
		Status:      r.Status,
		Reason:      r.Reason,
	}
}

type planMetaRequest struct {
	Title string `form:"title"`
	Goal  string `form:"goal"`
}

// renderDetail 在操作后重新渲染计划详情。
// 服务端失败时本地副本可能已被重新拉取，仍然渲染最新状态；计划已不存在时关闭弹窗。
func (a *API) renderDetail(c *gin.Context, fb *htmxFeedback, err error) {
	ws := workspace(c)
	if err != nil && (service.IsValidation(err) || errors.Is(err, service.ErrNotConfirmed)) {
		respondError(c, fb, err)
		return
	}
	if ws.Detail == nil {
		fb.closeModal(mainModal)
		fb.trigger(eventPlansChanged, nil)
		if err == nil {
			err = service.ErrNoPlanOpen
		}
		respondError(c, fb, err)
		return
	}
	a.renderHTML(c, fb, http.StatusOK, "plan_detail", gin.H{"Detail": ws.Detail})
}

func taskID(c *gin.Context, fb *htmxFeedback) (int, bool) {
	id, err := parseIntParam(c, "taskId")
	if err != nil {
		badRequest(c, fb, "无效的任务ID")
		return 0, false
	}
	return id, true
}

// ShowPlanDetail 打开计划详情
func (a *API) ShowPlanDetail(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	planID, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的计划ID")
		return
	}

	if err := a.details.Open(c.Request.Context(), ws, fb, planID); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderHTML(c, fb, http.StatusOK, "plan_detail", gin.H{"Detail": ws.Detail})
}

// PlanDetailViewMode 切换到查看模式
func (a *API) PlanDetailViewMode(c *gin.Context) {
	fb := newFeedback()
	a.renderDetail(c, fb, a.details.EnterViewMode(workspace(c)))
}

// PlanDetailEditMode 切换到编辑模式
func (a *API) PlanDetailEditMode(c *gin.Context) {
	fb := newFeedback()
	a.renderDetail(c, fb, a.details.EnterEditMode(workspace(c)))
}

// UpdatePlanDetail 保存计划标题与目标
func (a *API) UpdatePlanDetail(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req planMetaRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	err := a.details.SavePlanChanges(c.Request.Context(), ws, fb, req.Title, req.Goal)
	if err == nil {
		fb.trigger(eventPlansChanged, nil)
	}
	a.renderDetail(c, fb, err)
}

// DeletePlanDetail 删除当前打开的计划
func (a *API) DeletePlanDetail(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	if err := a.details.DeletePlan(c.Request.Context(), ws, fb, confirmed(c)); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.closeModal(mainModal)
	fb.trigger(eventPlansChanged, nil)
	respondNoContent(c, fb)
}

// BeginAddTask 展开新任务表单
func (a *API) BeginAddTask(c *gin.Context) {
	fb := newFeedback()
	a.renderDetail(c, fb, a.details.AddTask(workspace(c)))
}

// CancelAddTask 收起新任务表单
func (a *API) CancelAddTask(c *gin.Context) {
	fb := newFeedback()
	a.renderDetail(c, fb, a.details.CancelAddTask(workspace(c)))
}

// CreateTask 保存新任务
func (a *API) CreateTask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req taskRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	err := a.details.SaveNewTask(c.Request.Context(), ws, fb, req.form())
	if err == nil {
		fb.trigger(eventPlansChanged, nil)
	}
	a.renderDetail(c, fb, err)
}

// BeginTaskEdit 进入单个任务的编辑状态
func (a *API) BeginTaskEdit(c *gin.Context) {
	fb := newFeedback()
	id, ok := taskID(c, fb)
	if !ok {
		return
	}
	a.renderDetail(c, fb, a.details.EditTask(workspace(c), id))
}

// CancelTaskEdit 放弃任务编辑
func (a *API) CancelTaskEdit(c *gin.Context) {
	fb := newFeedback()
	a.renderDetail(c, fb, a.details.CancelTaskEdit(workspace(c)))
}

// UpdateTask 保存任务编辑
func (a *API) UpdateTask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()
	id, ok := taskID(c, fb)
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	err := a.details.SaveTaskEdit(c.Request.Context(), ws, fb, id, req.form())
	if err == nil {
		fb.trigger(eventPlansChanged, nil)
	}
	a.renderDetail(c, fb, err)
}

// ToggleTask 在待完成与已完成之间切换任务状态
func (a *API) ToggleTask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()
	id, ok := taskID(c, fb)
	if !ok {
		return
	}

	err := a.details.ToggleTaskStatus(c.Request.Context(), ws, fb, id)
	if err == nil {
		fb.trigger(eventPlansChanged, nil)
	}
	a.renderDetail(c, fb, err)
}

// DeleteTask 删除任务
func (a *API) DeleteTask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()
	id, ok := taskID(c, fb)
	if !ok {
		return
	}

	err := a.details.DeleteTask(c.Request.Context(), ws, fb, id, confirmed(c))
	if err == nil {
		fb.trigger(eventPlansChanged, nil)
	}
	a.renderDetail(c, fb, err)
}
