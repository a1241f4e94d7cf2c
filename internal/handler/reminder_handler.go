package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/service"
)

type reminderRequest struct {
	UserEmail        string `form:"user_email"`
	DailyStartTime   string `form:"daily_start_time"`
	DailySummaryTime string `form:"daily_summary_time"`
	Permission       string `form:"permission"`
}

// ShowReminder 打开某个计划的提醒设置弹窗
func (a *API) ShowReminder(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	planID, err := parseIntParam(c, "planId")
	if err != nil {
		badRequest(c, fb, "无效的计划ID")
		return
	}

	a.reminders.Open(ws, planID)
	a.renderHTML(c, fb, http.StatusOK, "reminder_modal", gin.H{"PlanID": planID})
}

// SetupReminders 保存提醒设置并安排浏览器提醒
func (a *API) SetupReminders(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req reminderRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	permission := strings.TrimSpace(req.Permission)
	if permission == "" {
		permission = service.PermissionDefault
	}
	form := service.ReminderForm{
		BrowserNotification: formBool(c, "browser_notification"),
		EmailReminder:       formBool(c, "email_reminder"),
		UserEmail:           req.UserEmail,
		DailyStartTime:      req.DailyStartTime,
		DailySummaryTime:    req.DailySummaryTime,
		Permission:          permission,
	}

	if _, err := a.reminders.Setup(c.Request.Context(), ws, fb, form); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.closeModal(subModal)
	respondNoContent(c, fb)
}
