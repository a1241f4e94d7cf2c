package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lifesteward/internal/model"
)

func userQuery(userID int) url.Values {
	return url.Values{"user_id": {strconv.Itoa(userID)}}
}

// Dashboard 获取仪表板统计
func (c *Client) Dashboard(ctx context.Context, userID int) (*model.Dashboard, error) {
	var out model.Dashboard
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/dashboard/%d", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPlans 获取用户的计划列表
func (c *Client) ListPlans(ctx context.Context, userID int) ([]model.Plan, error) {
	var out []model.Plan
	if err := c.request(ctx, http.MethodGet, "/plans/", userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPlan 获取单个计划
func (c *Client) GetPlan(ctx context.Context, planID int) (*model.Plan, error) {
	var out model.Plan
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/plans/%d", planID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePlan 请求服务端生成新计划
func (c *Client) CreatePlan(ctx context.Context, userID int, input model.PlanInput) (*model.Plan, error) {
	var out model.Plan
	if err := c.request(ctx, http.MethodPost, "/plans/", userQuery(userID), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePlan 修改计划标题与目标，服务端未返回计划时结果为 nil
func (c *Client) UpdatePlan(ctx context.Context, planID int, update model.PlanUpdate) (*model.Plan, error) {
	var out model.Plan
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/plans/%d", planID), nil, update, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

// DeletePlan 删除计划及其任务
func (c *Client) DeletePlan(ctx context.Context, planID int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/plans/%d", planID), nil, nil, nil)
}

// PlanToTodos 将计划中的任务转换为待办事项
func (c *Client) PlanToTodos(ctx context.Context, planID int) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/plans/%d/to-todos", planID), nil, nil, nil)
}

// ListTodos 获取待办列表，过滤条件为空时不附加对应参数
func (c *Client) ListTodos(ctx context.Context, userID int, filter model.TodoFilter) ([]model.Todo, error) {
	query := userQuery(userID)
	if filter.IsCompleted != "" {
		query.Set("is_completed", filter.IsCompleted)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Priority != "" {
		query.Set("priority", filter.Priority)
	}

	var out []model.Todo
	if err := c.request(ctx, http.MethodGet, "/todos/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTodo 新建待办事项
func (c *Client) CreateTodo(ctx context.Context, userID int, input model.TodoInput) (*model.Todo, error) {
	var out model.Todo
	if err := c.request(ctx, http.MethodPost, "/todos/", userQuery(userID), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo 更新待办事项，updates 可以是 TodoInput 或 TodoCompletion
func (c *Client) UpdateTodo(ctx context.Context, todoID int, updates any) error {
	return c.request(ctx, http.MethodPut, fmt.Sprintf("/todos/%d", todoID), nil, updates, nil)
}

// DeleteTodo 删除待办事项
func (c *Client) DeleteTodo(ctx context.Context, todoID int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/todos/%d", todoID), nil, nil, nil)
}

// ListTasks 获取某个计划下的任务
func (c *Client) ListTasks(ctx context.Context, userID, planID int) ([]model.Task, error) {
	query := userQuery(userID)
	query.Set("plan_id", strconv.Itoa(planID))

	var out []model.Task
	if err := c.request(ctx, http.MethodGet, "/tasks/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask 新增任务
func (c *Client) CreateTask(ctx context.Context, input model.TaskInput) (*model.Task, error) {
	var out model.Task
	if err := c.request(ctx, http.MethodPost, "/tasks/", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask 更新任务或子任务，服务端未返回任务时结果为 nil
func (c *Client) UpdateTask(ctx context.Context, taskID int, updates any) (*model.Task, error) {
	var out model.Task
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), nil, updates, &out); err != nil {
		return nil, err
	}
	if out.ID == 0 {
		return nil, nil
	}
	return &out, nil
}

// DeleteTask 删除任务
func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil, nil)
}

// TaskWithSubtasks 获取任务及其子任务
func (c *Client) TaskWithSubtasks(ctx context.Context, userID, taskID int) (*model.TaskWithSubtasks, error) {
	var out model.TaskWithSubtasks
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/with-subtasks", taskID), userQuery(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSubtask 在任务下新增子任务
func (c *Client) CreateSubtask(ctx context.Context, userID, taskID int, input model.SubtaskInput) error {
	return c.request(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/subtasks", taskID), userQuery(userID), input, nil)
}

// DeleteSubtask 删除子任务
func (c *Client) DeleteSubtask(ctx context.Context, subtaskID int) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/subtasks/%d", subtaskID), nil, nil, nil)
}

// Analytics 获取统计分析数据
func (c *Client) Analytics(ctx context.Context, userID int) (*model.Analytics, error) {
	var out model.Analytics
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/analytics/%d", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EstimateDays 请求 AI 估算完成目标需要的天数
func (c *Client) EstimateDays(ctx context.Context, goal string) (*model.DayEstimate, error) {
	body := map[string]string{"task_description": goal}
	var out model.DayEstimate
	if err := c.request(ctx, http.MethodPost, "/ai/estimate-days", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FollowUpQuestions 获取针对目标的 AI 反问
func (c *Client) FollowUpQuestions(ctx context.Context, goal string, planType model.PlanType) ([]string, error) {
	query := url.Values{
		"goal_description": {goal},
		"plan_type":        {string(planType)},
	}
	var out model.FollowUpQuestions
	if err := c.request(ctx, http.MethodGet, "/ai/follow-up-questions", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Questions, nil
}

// ScheduleReminders 为计划设置提醒，email 为空时不附带邮箱
func (c *Client) ScheduleReminders(ctx context.Context, planID int, email string) (*model.ReminderSchedule, error) {
	query := url.Values{"plan_id": {strconv.Itoa(planID)}}
	if email != "" {
		query.Set("user_email", email)
	}
	var out model.ReminderSchedule
	if err := c.request(ctx, http.MethodPost, "/reminders/schedule", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
