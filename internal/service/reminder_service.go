package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lifesteward/internal/apiclient"
	"github.com/lifesteward/internal/localstore"
	"github.com/lifesteward/internal/session"
)

// 浏览器上报的通知权限
const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
	PermissionDefault = "default"
)

// ReminderForm 是提醒设置弹窗提交的字段
type ReminderForm struct {
	BrowserNotification bool
	EmailReminder       bool
	UserEmail           string
	DailyStartTime      string
	DailySummaryTime    string
	// Permission 是浏览器在提交前请求到的通知权限
	Permission string
}

// ReminderSettings 是提醒设置在本地保存的形式
type ReminderSettings struct {
	PlanID              int    `json:"planId"`
	BrowserNotification bool   `json:"browserNotification"`
	EmailReminder       bool   `json:"emailReminder"`
	UserEmail           string `json:"userEmail"`
	DailyStartTime      string `json:"dailyStartTime"`
	DailySummaryTime    string `json:"dailySummaryTime"`
	Timestamp           string `json:"timestamp"`
}

// ReminderResult 汇总一次提醒设置的结果
type ReminderResult struct {
	Returned  int
	Scheduled int
}

// ReminderService 负责提醒设置，浏览器提醒交给 ReminderDispatcher 持久化调度
type ReminderService struct {
	api        PlannerAPI
	store      LocalStore
	dispatcher *ReminderDispatcher
	userID     int
	now        func() time.Time
}

// NewReminderService 构造 ReminderService
func NewReminderService(api PlannerAPI, store LocalStore, dispatcher *ReminderDispatcher, userID int) *ReminderService {
	return &ReminderService{api: api, store: store, dispatcher: dispatcher, userID: userID, now: time.Now}
}

// Open 记录提醒设置针对的计划
func (s *ReminderService) Open(ws *session.Workspace, planID int) {
	ws.Reminder = &session.ReminderSession{PlanID: planID}
}

// Setup 校验后调用提醒调度接口，成功时保存设置并安排浏览器提醒
func (s *ReminderService) Setup(ctx context.Context, ws *session.Workspace, fb Feedback, form ReminderForm) (*ReminderResult, error) {
	if ws.Reminder == nil || ws.Reminder.PlanID == 0 {
		return nil, invalid(fb, "未选择计划")
	}
	planID := ws.Reminder.PlanID

	email := strings.TrimSpace(form.UserEmail)
	if form.EmailReminder && email == "" {
		return nil, invalid(fb, "请输入邮箱地址")
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if form.BrowserNotification && form.Permission == PermissionDenied {
		fb.Toast(ToastInfo, "浏览器通知权限被拒绝")
	}

	resp, err := s.api.ScheduleReminders(ctx, planID, email)
	if err != nil {
		log.Printf("[REMINDER] schedule plan %d: %v", planID, err)
		fb.Toast(ToastError, "设置提醒失败: "+err.Error())
		return nil, err
	}
	if !resp.Success {
		message := strings.TrimSpace(resp.Message)
		if message == "" {
			message = apiclient.FallbackMessage
		}
		log.Printf("[REMINDER] schedule plan %d rejected: %s", planID, message)
		fb.Toast(ToastError, "设置提醒失败: "+message)
		return nil, fmt.Errorf("设置提醒失败: %s", message)
	}

	fb.Toast(ToastSuccess, "提醒设置成功！")

	settings := ReminderSettings{
		PlanID:              planID,
		BrowserNotification: form.BrowserNotification,
		EmailReminder:       form.EmailReminder,
		UserEmail:           email,
		DailyStartTime:      form.DailyStartTime,
		DailySummaryTime:    form.DailySummaryTime,
		Timestamp:           s.now().UTC().Format(time.RFC3339),
	}
	if err := s.store.Put(s.userID, localstore.KeyReminderSettings, settings); err != nil {
		log.Printf("[REMINDER] save settings: %v", err)
	}

	reminders := resp.Reminders()
	result := &ReminderResult{Returned: len(reminders)}
	if form.BrowserNotification && len(reminders) > 0 && s.dispatcher != nil {
		scheduled, err := s.dispatcher.Schedule(ctx, s.userID, planID, reminders)
		if err != nil {
			log.Printf("[REMINDER] persist reminders for plan %d: %v", planID, err)
			fb.Toast(ToastError, "安排提醒失败")
			return result, err
		}
		result.Scheduled = scheduled
		fb.Toast(ToastInfo, fmt.Sprintf("已安排%d个提醒", scheduled))
	}

	ws.Reminder = nil
	return result, nil
}
