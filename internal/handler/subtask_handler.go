package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/service"
)

type subtaskRequest struct {
	Title    string `form:"title"`
	Duration string `form:"duration"`
	Priority string `form:"priority"`
}

func (a *API) renderSubtasks(c *gin.Context, fb *htmxFeedback) {
	a.renderHTML(c, fb, http.StatusOK, "subtask_modal", gin.H{"Subtasks": workspace(c).Subtasks})
}

// ShowSubtasks 打开任务的子任务弹窗
func (a *API) ShowSubtasks(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	taskID, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的任务ID")
		return
	}

	if err := a.subtasks.Open(c.Request.Context(), ws, fb, taskID); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderSubtasks(c, fb)
}

// CreateSubtask 在当前任务下新增子任务
func (a *API) CreateSubtask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req subtaskRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	form := service.SubtaskForm{Title: req.Title, Duration: req.Duration, Priority: req.Priority}
	if err := a.subtasks.Add(c.Request.Context(), ws, fb, form); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderSubtasks(c, fb)
}

// CompleteSubtask 将子任务标记为完成
func (a *API) CompleteSubtask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	subtaskID, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的子任务ID")
		return
	}

	if err := a.subtasks.Complete(c.Request.Context(), ws, fb, subtaskID); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderSubtasks(c, fb)
}

// DeleteSubtask 删除子任务
func (a *API) DeleteSubtask(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	subtaskID, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的子任务ID")
		return
	}

	if err := a.subtasks.Delete(c.Request.Context(), ws, fb, subtaskID, confirmed(c)); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderSubtasks(c, fb)
}
