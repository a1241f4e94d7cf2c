package session

import (
	"github.com/lifesteward/internal/model"
)

// DetailMode 是计划详情弹窗的状态
type DetailMode int

const (
	// ModeViewing 只读展示
	ModeViewing DetailMode = iota
	// ModeEditingMetadata 编辑计划标题与目标
	ModeEditingMetadata
	// ModeEditingTask 编辑单个任务
	ModeEditingTask
	// ModeAddingTask 在任务列表顶部添加新任务
	ModeAddingTask
)

func (m DetailMode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditingMetadata:
		return "editing-metadata"
	case ModeEditingTask:
		return "editing-task"
	case ModeAddingTask:
		return "adding-task"
	}
	return "unknown"
}

// PlanDetail 持有当前打开的计划副本及其编辑状态。
// 任务编辑与新增是叠加在 viewing / editing-metadata 之上的临时状态，结束后回到原模式。
type PlanDetail struct {
	Plan model.Plan

	mode          DetailMode
	base          DetailMode
	editingTaskID int
}

// NewPlanDetail 以查看模式打开计划
func NewPlanDetail(plan model.Plan, tasks []model.Task) *PlanDetail {
	plan.Tasks = append([]model.Task(nil), tasks...)
	return &PlanDetail{Plan: plan, mode: ModeViewing, base: ModeViewing}
}

// Mode 返回当前状态
func (d *PlanDetail) Mode() DetailMode {
	return d.mode
}

// MetadataEditing 判断计划元信息是否处于编辑状态
func (d *PlanDetail) MetadataEditing() bool {
	return d.base == ModeEditingMetadata
}

// EditingTaskID 返回正在编辑的任务，未编辑时为 0
func (d *PlanDetail) EditingTaskID() int {
	if d.mode != ModeEditingTask {
		return 0
	}
	return d.editingTaskID
}

// AddingTask 判断新任务表单是否展开
func (d *PlanDetail) AddingTask() bool {
	return d.mode == ModeAddingTask
}

// EnterViewMode 回到只读模式，放弃所有未保存的编辑
func (d *PlanDetail) EnterViewMode() {
	d.mode = ModeViewing
	d.base = ModeViewing
	d.editingTaskID = 0
}

// EnterEditMode 进入计划元信息编辑模式
func (d *PlanDetail) EnterEditMode() {
	d.mode = ModeEditingMetadata
	d.base = ModeEditingMetadata
	d.editingTaskID = 0
}

// BeginTaskEdit 开始编辑某个任务，任务不存在时返回 false
func (d *PlanDetail) BeginTaskEdit(taskID int) bool {
	if d.taskIndex(taskID) < 0 {
		return false
	}
	d.mode = ModeEditingTask
	d.editingTaskID = taskID
	return true
}

// CancelTaskEdit 结束任务编辑，回到原模式
func (d *PlanDetail) CancelTaskEdit() {
	if d.mode == ModeEditingTask {
		d.restoreBase()
	}
}

// BeginAddTask 展开新任务表单，同一时间最多一个
func (d *PlanDetail) BeginAddTask() {
	d.mode = ModeAddingTask
	d.editingTaskID = 0
}

// CancelAddTask 收起新任务表单
func (d *PlanDetail) CancelAddTask() {
	if d.mode == ModeAddingTask {
		d.restoreBase()
	}
}

func (d *PlanDetail) restoreBase() {
	d.mode = d.base
	d.editingTaskID = 0
}

func (d *PlanDetail) taskIndex(taskID int) int {
	for i, task := range d.Plan.Tasks {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}

// Task 返回缓存中的任务
func (d *PlanDetail) Task(taskID int) (model.Task, bool) {
	idx := d.taskIndex(taskID)
	if idx < 0 {
		return model.Task{}, false
	}
	return d.Plan.Tasks[idx], true
}

// Change 描述一次已被服务端确认的修改
type Change struct {
	// TaskID 与 Updated/Submitted 配合表示任务被修改
	TaskID    int
	Updated   *model.Task
	Submitted *model.TaskUpdate
	// Status 非空时只修改任务状态
	Status model.TaskStatus
	// Created 表示新增任务
	Created *model.Task
	// Deleted 表示删除任务
	Deleted bool
	// Plan 表示计划元信息被修改
	Plan       *model.Plan
	PlanUpdate *model.PlanUpdate
}

// Apply 把服务端确认的修改合并进本地副本，是唯一修改缓存的入口。
// 返回 false 表示本地副本无法定位修改对象，调用方应重新拉取。
func (d *PlanDetail) Apply(change Change) bool {
	switch {
	case change.Created != nil:
		d.Plan.Tasks = append(d.Plan.Tasks, *change.Created)
		d.CancelAddTask()
		return true

	case change.Plan != nil || change.PlanUpdate != nil:
		if change.Plan != nil && change.Plan.ID == d.Plan.ID {
			tasks := d.Plan.Tasks
			d.Plan = *change.Plan
			d.Plan.Tasks = tasks
		} else if change.PlanUpdate != nil {
			d.Plan.Title = change.PlanUpdate.Title
			d.Plan.Goal = ""
			if change.PlanUpdate.Goal != nil {
				d.Plan.Goal = *change.PlanUpdate.Goal
			}
		}
		d.EnterViewMode()
		return true
	}

	idx := d.taskIndex(change.TaskID)
	if idx < 0 {
		return false
	}

	switch {
	case change.Deleted:
		d.Plan.Tasks = append(d.Plan.Tasks[:idx:idx], d.Plan.Tasks[idx+1:]...)
		if d.editingTaskID == change.TaskID {
			d.CancelTaskEdit()
		}
	case change.Updated != nil && change.Updated.ID == change.TaskID:
		d.Plan.Tasks[idx] = *change.Updated
		d.CancelTaskEdit()
	case change.Submitted != nil:
		d.Plan.Tasks[idx] = change.Submitted.ApplyTo(d.Plan.Tasks[idx])
		d.CancelTaskEdit()
	case change.Status != "":
		d.Plan.Tasks[idx].Status = change.Status
	default:
		return false
	}
	return true
}

// NewTask 返回新任务表单的默认值
func (d *PlanDetail) NewTask() model.Task {
	return model.Task{
		PlanID:   d.Plan.ID,
		Priority: model.PriorityMedium,
		Status:   model.TaskStatusPending,
		Duration: 60,
	}
}
