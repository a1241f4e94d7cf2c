package session

import (
	"sync"
	"time"

	"github.com/lifesteward/internal/model"
)

// Section 是页面顶层视图
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionPlans     Section = "plans"
	SectionTodos     Section = "todos"
	SectionAnalytics Section = "analytics"
)

// ParseSection 校验视图名称，未知名称返回 false
func ParseSection(name string) (Section, bool) {
	switch s := Section(name); s {
	case SectionDashboard, SectionPlans, SectionTodos, SectionAnalytics:
		return s, true
	}
	return "", false
}

// Workspace 保存一个浏览器会话的全部前端状态。
// 调用方需在一次请求内持有 Lock，保证同一会话的操作顺序执行。
type Workspace struct {
	mu sync.Mutex

	ID       string
	Section  Section
	lastSeen time.Time

	Dashboard  *model.Dashboard
	Plans      []model.Plan
	Todos      []model.Todo
	TodoFilter model.TodoFilter
	Analytics  *model.Analytics
	// ChartGeneration 每次重新渲染图表时递增，浏览器据此销毁旧图表
	ChartGeneration int

	Detail    *PlanDetail
	Subtasks  *SubtaskSession
	Questions *QuestionSession
	Reminder  *ReminderSession
}

// NewWorkspace 创建默认停留在仪表板的会话
func NewWorkspace(id string) *Workspace {
	return &Workspace{ID: id, Section: SectionDashboard, lastSeen: time.Now()}
}

// Lock 独占会话状态
func (w *Workspace) Lock() {
	w.mu.Lock()
}

// Unlock 释放会话状态
func (w *Workspace) Unlock() {
	w.mu.Unlock()
}

// FindTodo 在缓存的待办列表中查找
func (w *Workspace) FindTodo(id int) (model.Todo, bool) {
	for _, todo := range w.Todos {
		if todo.ID == id {
			return todo, true
		}
	}
	return model.Todo{}, false
}
