package service

import (
	"context"
	"log"
	"strings"

	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

// TodoService 负责待办事项的增删改查
type TodoService struct {
	api    PlannerAPI
	userID int
}

// NewTodoService 构造 TodoService
func NewTodoService(api PlannerAPI, userID int) *TodoService {
	return &TodoService{api: api, userID: userID}
}

// TodoForm 是创建/编辑待办提交的原始字段
type TodoForm struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     string
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// BuildTodoInput 校验标题并生成请求体，空分类与空截止日期发送 null
func BuildTodoInput(form TodoForm) (model.TodoInput, string) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return model.TodoInput{}, "请输入标题"
	}
	return model.TodoInput{
		Title:       title,
		Description: form.Description,
		Priority:    model.NormalizePriority(form.Priority),
		Category:    optionalString(form.Category),
		DueDate:     optionalString(form.DueDate),
	}, ""
}

// Load 按过滤条件拉取待办列表；空条件不会附加到请求中
func (s *TodoService) Load(ctx context.Context, ws *session.Workspace, fb Feedback, filter model.TodoFilter) error {
	fb.ShowLoading()
	defer fb.HideLoading()

	todos, err := s.api.ListTodos(ctx, s.userID, filter)
	if err != nil {
		log.Printf("[TODO] load todos: %v", err)
		fb.Toast(ToastError, "加载Todo失败")
		return err
	}

	ws.Todos = todos
	ws.TodoFilter = filter
	return nil
}

// Create 校验后新建待办并刷新列表
func (s *TodoService) Create(ctx context.Context, ws *session.Workspace, fb Feedback, form TodoForm) (*model.Todo, error) {
	input, problem := BuildTodoInput(form)
	if problem != "" {
		return nil, invalid(fb, problem)
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	todo, err := s.api.CreateTodo(ctx, s.userID, input)
	if err != nil {
		log.Printf("[TODO] create todo: %v", err)
		fb.Toast(ToastError, "创建待办事项失败: "+err.Error())
		return nil, err
	}

	fb.Toast(ToastSuccess, "待办事项添加成功！")
	s.reload(ctx, ws, fb)
	return todo, nil
}

// Update 保存行内编辑的待办
func (s *TodoService) Update(ctx context.Context, ws *session.Workspace, fb Feedback, todoID int, form TodoForm) error {
	input, problem := BuildTodoInput(form)
	if problem != "" {
		return invalid(fb, problem)
	}
	return s.update(ctx, ws, fb, todoID, input)
}

// Toggle 将待办的完成状态取反
func (s *TodoService) Toggle(ctx context.Context, ws *session.Workspace, fb Feedback, todoID int) error {
	todo, ok := ws.FindTodo(todoID)
	if !ok {
		return ErrTodoNotFound
	}
	return s.update(ctx, ws, fb, todoID, model.TodoCompletion{IsCompleted: !todo.IsCompleted})
}

func (s *TodoService) update(ctx context.Context, ws *session.Workspace, fb Feedback, todoID int, updates any) error {
	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.UpdateTodo(ctx, todoID, updates); err != nil {
		log.Printf("[TODO] update todo %d: %v", todoID, err)
		fb.Toast(ToastError, "更新失败: "+err.Error())
		return err
	}

	fb.Toast(ToastSuccess, "更新成功！")
	s.reload(ctx, ws, fb)
	return nil
}

// Delete 删除待办，未确认时不发出请求
func (s *TodoService) Delete(ctx context.Context, ws *session.Workspace, fb Feedback, todoID int, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	if err := s.api.DeleteTodo(ctx, todoID); err != nil {
		log.Printf("[TODO] delete todo %d: %v", todoID, err)
		fb.Toast(ToastError, "删除失败: "+err.Error())
		return err
	}

	fb.Toast(ToastSuccess, "删除成功！")
	s.reload(ctx, ws, fb)
	return nil
}

func (s *TodoService) reload(ctx context.Context, ws *session.Workspace, fb Feedback) {
	if err := s.Load(ctx, ws, fb, ws.TodoFilter); err != nil {
		log.Printf("[TODO] reload: %v", err)
	}
}
