package service

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

const defaultSubtaskDuration = 30

// SubtaskService 负责子任务弹窗，当前任务只记录在会话中
type SubtaskService struct {
	api    PlannerAPI
	userID int
	now    func() time.Time
}

// NewSubtaskService 构造 SubtaskService
func NewSubtaskService(api PlannerAPI, userID int) *SubtaskService {
	return &SubtaskService{api: api, userID: userID, now: time.Now}
}

// SubtaskForm 是新增子任务表单的原始字段
type SubtaskForm struct {
	Title    string
	Duration string
	Priority string
}

// BuildSubtaskInput 校验标题，时长缺失或非法时使用 30 分钟
func BuildSubtaskInput(form SubtaskForm) (model.SubtaskInput, string) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return model.SubtaskInput{}, "请输入子任务标题"
	}
	duration, err := strconv.Atoi(strings.TrimSpace(form.Duration))
	if err != nil || duration <= 0 {
		duration = defaultSubtaskDuration
	}
	return model.SubtaskInput{
		Title:      title,
		Duration:   duration,
		Priority:   model.NormalizePriority(form.Priority),
		OrderIndex: 0,
	}, ""
}

// Open 选中任务并加载其子任务
func (s *SubtaskService) Open(ctx context.Context, ws *session.Workspace, fb Feedback, taskID int) error {
	fb.ShowLoading()
	defer fb.HideLoading()

	result, err := s.api.TaskWithSubtasks(ctx, s.userID, taskID)
	if err != nil {
		log.Printf("[SUBTASK] load task %d: %v", taskID, err)
		fb.Toast(ToastError, "加载子任务失败")
		return err
	}

	ws.Subtasks = &session.SubtaskSession{
		TaskID:   taskID,
		Task:     result.Task,
		Subtasks: result.Subtasks,
	}
	return nil
}

func (s *SubtaskService) current(ws *session.Workspace) (int, error) {
	if ws.Subtasks == nil || ws.Subtasks.TaskID == 0 {
		return 0, ErrNoTaskSelected
	}
	return ws.Subtasks.TaskID, nil
}

// Add 在当前任务下新增子任务并重新加载
func (s *SubtaskService) Add(ctx context.Context, ws *session.Workspace, fb Feedback, form SubtaskForm) error {
	taskID, err := s.current(ws)
	if err != nil {
		return err
	}
	input, problem := BuildSubtaskInput(form)
	if problem != "" {
		return invalid(fb, problem)
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.CreateSubtask(ctx, s.userID, taskID, input); err != nil {
		log.Printf("[SUBTASK] create under task %d: %v", taskID, err)
		fb.Toast(ToastError, "添加子任务失败")
		return err
	}

	s.reload(ctx, ws, fb, taskID)
	fb.Toast(ToastSuccess, "子任务添加成功")
	return nil
}

// Complete 将子任务标记为已完成并记录完成时间
func (s *SubtaskService) Complete(ctx context.Context, ws *session.Workspace, fb Feedback, subtaskID int) error {
	taskID, err := s.current(ws)
	if err != nil {
		return err
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	completedAt := s.now().UTC().Format(time.RFC3339)
	update := model.TaskStatusUpdate{Status: model.TaskStatusCompleted, CompletedAt: &completedAt}
	if _, err := s.api.UpdateTask(ctx, subtaskID, update); err != nil {
		log.Printf("[SUBTASK] complete %d: %v", subtaskID, err)
		fb.Toast(ToastError, "更新子任务状态失败")
		return err
	}

	s.reload(ctx, ws, fb, taskID)
	fb.Toast(ToastSuccess, "子任务状态更新成功")
	return nil
}

// Delete 删除子任务，未确认时不发出请求
func (s *SubtaskService) Delete(ctx context.Context, ws *session.Workspace, fb Feedback, subtaskID int, confirmed bool) error {
	taskID, err := s.current(ws)
	if err != nil {
		return err
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.DeleteSubtask(ctx, subtaskID); err != nil {
		log.Printf("[SUBTASK] delete %d: %v", subtaskID, err)
		fb.Toast(ToastError, "删除子任务失败: "+err.Error())
		return err
	}

	fb.Toast(ToastSuccess, "子任务删除成功！")
	s.reload(ctx, ws, fb, taskID)
	return nil
}

func (s *SubtaskService) reload(ctx context.Context, ws *session.Workspace, fb Feedback, taskID int) {
	if err := s.Open(ctx, ws, fb, taskID); err != nil {
		log.Printf("[SUBTASK] reload task %d: %v", taskID, err)
	}
}
