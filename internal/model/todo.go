package model

import "strings"

// Todo 是独立于计划的待办事项
type Todo struct {
	ID          int      `json:"id"`
	UserID      int      `json:"user_id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    *string  `json:"category"`
	DueDate     *string  `json:"due_date"`
	IsCompleted bool     `json:"is_completed"`
	CompletedAt *string  `json:"completed_at,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	TaskID      *int     `json:"task_id,omitempty"`
}

// PriorityClass 返回列表项使用的 CSS 修饰类
func (t Todo) PriorityClass() string {
	return "priority-" + strings.ToLower(string(t.Priority))
}

// CategoryText 返回分类，缺失时为空字符串
func (t Todo) CategoryText() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}

// DueDateText 返回截止日期，缺失时为空字符串
func (t Todo) DueDateText() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// TodoInput 是创建/编辑待办事项的请求体，分类与截止日期为空时发送 null
type TodoInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    *string  `json:"category"`
	DueDate     *string  `json:"due_date"`
}

// TodoCompletion 只切换完成状态
type TodoCompletion struct {
	IsCompleted bool `json:"is_completed"`
}

// TodoFilter 描述列表的可选过滤条件，空值表示不过滤
type TodoFilter struct {
	IsCompleted string
	Category    string
	Priority    string
}

// Empty 判断是否没有任何过滤条件
func (f TodoFilter) Empty() bool {
	return f.IsCompleted == "" && f.Category == "" && f.Priority == ""
}
