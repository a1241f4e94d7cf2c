package model

// PlanType 描述计划的时间跨度
type PlanType string

const (
	PlanTypeDaily  PlanType = "daily"
	PlanTypeWeekly PlanType = "weekly"
	PlanTypeCustom PlanType = "custom"
)

// Valid 判断计划类型是否为已知取值
func (t PlanType) Valid() bool {
	switch t {
	case PlanTypeDaily, PlanTypeWeekly, PlanTypeCustom:
		return true
	}
	return false
}

// PlanStatus 描述计划的整体状态
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusPaused    PlanStatus = "paused"
)

// TaskStatus 描述任务/子任务的进度
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid 判断任务状态是否为已知取值
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Toggled 在 pending 与 completed 之间切换；其他状态一律视为未完成。
func (s TaskStatus) Toggled() TaskStatus {
	if s == TaskStatusCompleted {
		return TaskStatusPending
	}
	return TaskStatusCompleted
}

// Priority 使用服务端约定的中文取值
type Priority string

const (
	PriorityHigh   Priority = "高"
	PriorityMedium Priority = "中"
	PriorityLow    Priority = "低"
)

// Valid 判断优先级是否为已知取值
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// NormalizePriority 将空值或未知值回退为中优先级
func NormalizePriority(raw string) Priority {
	p := Priority(raw)
	if !p.Valid() {
		return PriorityMedium
	}
	return p
}
