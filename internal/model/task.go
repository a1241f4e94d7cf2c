package model

// Task 是计划中的一个工作单元，ParentTaskID 为空表示顶层任务
type Task struct {
	ID           int        `json:"id"`
	PlanID       int        `json:"plan_id,omitempty"`
	ParentTaskID *int       `json:"parent_task_id,omitempty"`
	IsSubtask    bool       `json:"is_subtask,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       TaskStatus `json:"status"`
	Priority     Priority   `json:"priority"`
	Time         *string    `json:"time,omitempty"`
	Duration     int        `json:"duration"`
	Reason       *string    `json:"reason,omitempty"`
	OrderIndex   int        `json:"order_index,omitempty"`
	CompletedAt  *string    `json:"completed_at,omitempty"`
}

// IsTopLevel 判断任务是否可以继续拆分子任务
func (t Task) IsTopLevel() bool {
	return t.ParentTaskID == nil && !t.IsSubtask
}

// Label 返回卡片上展示的任务名称
func (t Task) Label() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Description
}

// DurationOrDefault 在时长缺失时回退为 60 分钟
func (t Task) DurationOrDefault() int {
	if t.Duration <= 0 {
		return 60
	}
	return t.Duration
}

// TimeText 返回时间字段，缺失时为空字符串
func (t Task) TimeText() string {
	if t.Time == nil {
		return ""
	}
	return *t.Time
}

// ReasonText 返回原因字段，缺失时为空字符串
func (t Task) ReasonText() string {
	if t.Reason == nil {
		return ""
	}
	return *t.Reason
}

// TaskInput 是新增任务的请求体
type TaskInput struct {
	UserID      int        `json:"user_id"`
	PlanID      int        `json:"plan_id"`
	Description string     `json:"description"`
	Time        *string    `json:"time"`
	Duration    int        `json:"duration"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	Reason      *string    `json:"reason"`
}

// TaskUpdate 是编辑任务的请求体
type TaskUpdate struct {
	Description string     `json:"description"`
	Time        *string    `json:"time"`
	Duration    int        `json:"duration"`
	Priority    Priority   `json:"priority"`
	Status      TaskStatus `json:"status"`
	Reason      *string    `json:"reason"`
}

// ApplyTo 把更新字段覆盖到任务上并返回新值
func (u TaskUpdate) ApplyTo(t Task) Task {
	t.Description = u.Description
	t.Time = u.Time
	t.Duration = u.Duration
	t.Priority = u.Priority
	t.Status = u.Status
	t.Reason = u.Reason
	return t
}

// TaskStatusUpdate 只修改任务状态；completed_at 为空时不发送，任务切换只提交 status
type TaskStatusUpdate struct {
	Status      TaskStatus `json:"status"`
	CompletedAt *string    `json:"completed_at,omitempty"`
}

// Subtask 是挂在某个任务下的子任务
type Subtask struct {
	ID           int        `json:"id"`
	ParentTaskID int        `json:"parent_task_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Duration     int        `json:"duration"`
	Priority     Priority   `json:"priority"`
	Status       TaskStatus `json:"status"`
	OrderIndex   int        `json:"order_index"`
}

// SubtaskInput 是新增子任务的请求体
type SubtaskInput struct {
	Title      string   `json:"title"`
	Duration   int      `json:"duration"`
	Priority   Priority `json:"priority"`
	OrderIndex int      `json:"order_index"`
}

// TaskWithSubtasks 是 /tasks/{id}/with-subtasks 的返回值
type TaskWithSubtasks struct {
	Task     Task      `json:"task"`
	Subtasks []Subtask `json:"subtasks"`
}
