package service

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/lifesteward/internal/apiclient"
	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

const defaultTaskDuration = 60

// PlanDetailService 负责计划详情弹窗中的查看、编辑与任务增删改
type PlanDetailService struct {
	api       PlannerAPI
	userID    int
	plans     *PlanService
	dashboard *DashboardService
}

// NewPlanDetailService 构造 PlanDetailService
func NewPlanDetailService(api PlannerAPI, userID int, plans *PlanService, dashboard *DashboardService) *PlanDetailService {
	return &PlanDetailService{api: api, userID: userID, plans: plans, dashboard: dashboard}
}

// TaskForm 是任务编辑/新增表单的原始字段
type TaskForm struct {
	Description string
	Time        string
	Duration    string
	Priority    string
	Status      string
	Reason      string
}

// BuildTaskUpdate 校验任务描述并生成请求体，空时间与空原因发送 null
func BuildTaskUpdate(form TaskForm) (model.TaskUpdate, string) {
	description := strings.TrimSpace(form.Description)
	if description == "" {
		return model.TaskUpdate{}, "任务描述不能为空"
	}

	duration, err := strconv.Atoi(strings.TrimSpace(form.Duration))
	if err != nil || duration <= 0 {
		duration = defaultTaskDuration
	}

	status := model.TaskStatus(strings.TrimSpace(form.Status))
	if !status.Valid() {
		status = model.TaskStatusPending
	}

	return model.TaskUpdate{
		Description: description,
		Time:        optionalString(form.Time),
		Duration:    duration,
		Priority:    model.NormalizePriority(form.Priority),
		Status:      status,
		Reason:      optionalString(form.Reason),
	}, ""
}

// Open 拉取计划与任务并以查看模式打开详情
func (s *PlanDetailService) Open(ctx context.Context, ws *session.Workspace, fb Feedback, planID int) error {
	fb.ShowLoading()
	defer fb.HideLoading()

	detail, err := s.fetch(ctx, planID)
	if err != nil {
		log.Printf("[PLAN] open plan %d: %v", planID, err)
		fb.Toast(ToastError, "加载计划详情失败: "+err.Error())
		return err
	}

	ws.Detail = detail
	return nil
}

func (s *PlanDetailService) fetch(ctx context.Context, planID int) (*session.PlanDetail, error) {
	plan, err := s.api.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.api.ListTasks(ctx, s.userID, planID)
	if err != nil {
		return nil, err
	}
	return session.NewPlanDetail(*plan, tasks), nil
}

// refetch 在本地副本与服务端不一致时重新拉取计划，保留元信息编辑状态
func (s *PlanDetailService) refetch(ctx context.Context, ws *session.Workspace) {
	current := ws.Detail
	if current == nil {
		return
	}
	detail, err := s.fetch(ctx, current.Plan.ID)
	if err != nil {
		if apiclient.StatusOf(err) == http.StatusNotFound {
			ws.Detail = nil
		}
		log.Printf("[PLAN] refetch plan %d: %v", current.Plan.ID, err)
		return
	}
	if current.MetadataEditing() {
		detail.EnterEditMode()
	}
	ws.Detail = detail
}

func isConflict(err error) bool {
	switch apiclient.StatusOf(err) {
	case http.StatusNotFound, http.StatusConflict:
		return true
	}
	return false
}

func (s *PlanDetailService) detail(ws *session.Workspace) (*session.PlanDetail, error) {
	if ws.Detail == nil {
		return nil, ErrNoPlanOpen
	}
	return ws.Detail, nil
}

// EnterViewMode 切回只读模式
func (s *PlanDetailService) EnterViewMode(ws *session.Workspace) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	detail.EnterViewMode()
	return nil
}

// EnterEditMode 进入元信息编辑模式
func (s *PlanDetailService) EnterEditMode(ws *session.Workspace) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	detail.EnterEditMode()
	return nil
}

// EditTask 打开单个任务的编辑表单
func (s *PlanDetailService) EditTask(ws *session.Workspace, taskID int) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	if !detail.BeginTaskEdit(taskID) {
		return ErrTaskNotFound
	}
	return nil
}

// CancelTaskEdit 放弃任务编辑
func (s *PlanDetailService) CancelTaskEdit(ws *session.Workspace) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	detail.CancelTaskEdit()
	return nil
}

// AddTask 展开新任务表单
func (s *PlanDetailService) AddTask(ws *session.Workspace) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	detail.BeginAddTask()
	return nil
}

// CancelAddTask 收起新任务表单
func (s *PlanDetailService) CancelAddTask(ws *session.Workspace) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	detail.CancelAddTask()
	return nil
}

// SaveTaskEdit 提交任务修改并合并到本地副本
func (s *PlanDetailService) SaveTaskEdit(ctx context.Context, ws *session.Workspace, fb Feedback, taskID int, form TaskForm) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	update, problem := BuildTaskUpdate(form)
	if problem != "" {
		return invalid(fb, problem)
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	updated, err := s.api.UpdateTask(ctx, taskID, update)
	if err != nil {
		log.Printf("[PLAN] update task %d: %v", taskID, err)
		fb.Toast(ToastError, "更新任务失败: "+err.Error())
		if isConflict(err) {
			s.refetch(ctx, ws)
		}
		return err
	}

	fb.Toast(ToastSuccess, "任务更新成功！")
	if !detail.Apply(session.Change{TaskID: taskID, Updated: updated, Submitted: &update}) {
		s.refetch(ctx, ws)
	}
	return nil
}

// SaveNewTask 新增任务，成功后追加到本地副本并刷新计划列表
func (s *PlanDetailService) SaveNewTask(ctx context.Context, ws *session.Workspace, fb Feedback, form TaskForm) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	update, problem := BuildTaskUpdate(form)
	if problem != "" {
		return invalid(fb, problem)
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	input := model.TaskInput{
		UserID:      s.userID,
		PlanID:      detail.Plan.ID,
		Description: update.Description,
		Time:        update.Time,
		Duration:    update.Duration,
		Priority:    update.Priority,
		Status:      update.Status,
		Reason:      update.Reason,
	}
	created, err := s.api.CreateTask(ctx, input)
	if err != nil {
		log.Printf("[PLAN] create task in plan %d: %v", detail.Plan.ID, err)
		fb.Toast(ToastError, "添加任务失败: "+err.Error())
		if isConflict(err) {
			s.refetch(ctx, ws)
		}
		return err
	}

	fb.Toast(ToastSuccess, "新任务添加成功！")
	if created == nil || created.ID == 0 {
		s.refetch(ctx, ws)
	} else {
		detail.Apply(session.Change{Created: created})
	}
	s.refreshPlans(ctx, ws, fb)
	return nil
}

// ToggleTaskStatus 在待完成与已完成之间切换任务状态
func (s *PlanDetailService) ToggleTaskStatus(ctx context.Context, ws *session.Workspace, fb Feedback, taskID int) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	task, ok := detail.Task(taskID)
	if !ok {
		return ErrTaskNotFound
	}
	next := task.Status.Toggled()

	fb.ShowLoading()
	defer fb.HideLoading()

	if _, err := s.api.UpdateTask(ctx, taskID, model.TaskStatusUpdate{Status: next}); err != nil {
		log.Printf("[PLAN] toggle task %d: %v", taskID, err)
		fb.Toast(ToastError, "更新任务状态失败: "+err.Error())
		if isConflict(err) {
			s.refetch(ctx, ws)
		}
		return err
	}

	if next == model.TaskStatusCompleted {
		fb.Toast(ToastSuccess, "任务已标记为完成！")
	} else {
		fb.Toast(ToastSuccess, "任务已标记为未完成！")
	}
	if !detail.Apply(session.Change{TaskID: taskID, Status: next}) {
		s.refetch(ctx, ws)
	}
	return nil
}

// DeleteTask 删除任务，未确认时不发出请求
func (s *PlanDetailService) DeleteTask(ctx context.Context, ws *session.Workspace, fb Feedback, taskID int, confirmed bool) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		log.Printf("[PLAN] delete task %d: %v", taskID, err)
		fb.Toast(ToastError, "删除任务失败: "+err.Error())
		if isConflict(err) {
			s.refetch(ctx, ws)
		}
		return err
	}

	fb.Toast(ToastSuccess, "任务删除成功！")
	if !detail.Apply(session.Change{TaskID: taskID, Deleted: true}) {
		s.refetch(ctx, ws)
	}
	s.refreshPlans(ctx, ws, fb)
	return nil
}

// SavePlanChanges 保存计划标题与目标，成功后回到查看模式
func (s *PlanDetailService) SavePlanChanges(ctx context.Context, ws *session.Workspace, fb Feedback, title, goal string) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return invalid(fb, "计划标题不能为空")
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	update := model.PlanUpdate{Title: title, Goal: optionalString(goal)}
	updated, err := s.api.UpdatePlan(ctx, detail.Plan.ID, update)
	if err != nil {
		log.Printf("[PLAN] update plan %d: %v", detail.Plan.ID, err)
		fb.Toast(ToastError, "更新计划失败: "+err.Error())
		if isConflict(err) {
			s.refetch(ctx, ws)
		}
		return err
	}

	fb.Toast(ToastSuccess, "计划信息更新成功！")
	detail.Apply(session.Change{Plan: updated, PlanUpdate: &update})
	s.refreshPlans(ctx, ws, fb)
	return nil
}

// DeletePlan 删除当前计划，关闭详情并刷新计划列表与仪表板
func (s *PlanDetailService) DeletePlan(ctx context.Context, ws *session.Workspace, fb Feedback, confirmed bool) error {
	detail, err := s.detail(ws)
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.DeletePlan(ctx, detail.Plan.ID); err != nil {
		log.Printf("[PLAN] delete plan %d: %v", detail.Plan.ID, err)
		fb.Toast(ToastError, "删除计划失败: "+err.Error())
		return err
	}

	fb.Toast(ToastSuccess, "计划删除成功！")
	ws.Detail = nil
	s.refreshPlans(ctx, ws, fb)
	if s.dashboard != nil {
		if err := s.dashboard.Load(ctx, ws, fb); err != nil {
			log.Printf("[PLAN] refresh dashboard after delete: %v", err)
		}
	}
	return nil
}

func (s *PlanDetailService) refreshPlans(ctx context.Context, ws *session.Workspace, fb Feedback) {
	if s.plans == nil {
		return
	}
	if err := s.plans.Load(ctx, ws, fb); err != nil {
		log.Printf("[PLAN] refresh plans: %v", err)
	}
}
