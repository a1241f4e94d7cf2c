package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/service"
)

type todoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Priority    string `form:"priority"`
	Category    string `form:"category"`
	DueDate     string `form:"due_date"`
}

func (r todoRequest) form() service.TodoForm {
	return service.TodoForm{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		DueDate:     r.DueDate,
	}
}

type todoFilterRequest struct {
	IsCompleted string `form:"is_completed"`
	Category    string `form:"category"`
	Priority    string `form:"priority"`
}

// FilterTodos 按过滤条件重新加载待办列表，空条件表示清除过滤
func (a *API) FilterTodos(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req todoFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	filter := model.TodoFilter{
		IsCompleted: strings.TrimSpace(req.IsCompleted),
		Category:    strings.TrimSpace(req.Category),
		Priority:    strings.TrimSpace(req.Priority),
	}
	if err := a.todos.Load(c.Request.Context(), ws, fb, filter); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderHTML(c, fb, http.StatusOK, "todos_list", nil)
}

// ListTodos 用缓存重新渲染待办列表
func (a *API) ListTodos(c *gin.Context) {
	a.renderHTML(c, newFeedback(), http.StatusOK, "todos_list", nil)
}

// ShowCreateTodo 渲染添加待办弹窗
func (a *API) ShowCreateTodo(c *gin.Context) {
	a.renderHTML(c, newFeedback(), http.StatusOK, "create_todo_modal", nil)
}

// CreateTodo 新建待办
func (a *API) CreateTodo(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	var req todoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	if _, err := a.todos.Create(c.Request.Context(), ws, fb, req.form()); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.closeModal(mainModal)
	fb.trigger(eventTodosChanged, nil)
	respondNoContent(c, fb)
}

func (a *API) cachedTodo(c *gin.Context, fb *htmxFeedback) (model.Todo, bool) {
	id, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的待办ID")
		return model.Todo{}, false
	}
	todo, ok := workspace(c).FindTodo(id)
	if !ok {
		respondError(c, fb, service.ErrTodoNotFound)
		return model.Todo{}, false
	}
	return todo, true
}

// ShowTodo 渲染单个待办，用于取消行内编辑
func (a *API) ShowTodo(c *gin.Context) {
	fb := newFeedback()
	todo, ok := a.cachedTodo(c, fb)
	if !ok {
		return
	}
	fb.flush(c)
	c.HTML(http.StatusOK, "todo_item", todo)
}

// EditTodo 渲染行内编辑表单
func (a *API) EditTodo(c *gin.Context) {
	fb := newFeedback()
	todo, ok := a.cachedTodo(c, fb)
	if !ok {
		return
	}
	fb.flush(c)
	c.HTML(http.StatusOK, "todo_edit", todo)
}

// UpdateTodo 保存行内编辑
func (a *API) UpdateTodo(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	id, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的待办ID")
		return
	}

	var req todoRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, fb, "请求参数错误")
		return
	}

	if err := a.todos.Update(c.Request.Context(), ws, fb, id, req.form()); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.trigger(eventTodosChanged, nil)
	respondNoContent(c, fb)
}

// ToggleTodo 切换待办的完成状态
func (a *API) ToggleTodo(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	id, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的待办ID")
		return
	}

	if err := a.todos.Toggle(c.Request.Context(), ws, fb, id); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.trigger(eventTodosChanged, nil)
	respondNoContent(c, fb)
}

// DeleteTodo 删除待办
func (a *API) DeleteTodo(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	id, err := parseIntParam(c, "id")
	if err != nil {
		badRequest(c, fb, "无效的待办ID")
		return
	}

	if err := a.todos.Delete(c.Request.Context(), ws, fb, id, confirmed(c)); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.trigger(eventTodosChanged, nil)
	respondNoContent(c, fb)
}
