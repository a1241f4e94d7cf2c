package service

import (
	"context"
	"sync"
	"testing"

	"github.com/lifesteward/internal/model"
)

// stubAPI 记录调用并返回预设结果
type stubAPI struct {
	mu    sync.Mutex
	calls []string

	dashboard    *model.Dashboard
	dashboardErr error
	analytics    *model.Analytics
	analyticsErr error

	plans         []model.Plan
	plansErr      error
	plan          *model.Plan
	getPlanErr    error
	createdPlan   *model.Plan
	createPlanErr error
	planInputs    []model.PlanInput
	updatedPlan   *model.Plan
	updatePlanErr error
	deletePlanErr error
	toTodosErr    error

	todos         []model.Todo
	todosErr      error
	todoFilters   []model.TodoFilter
	todoInputs    []model.TodoInput
	todoUpdates   []any
	updateTodoErr error
	deleteTodoErr error

	tasks         []model.Task
	tasksErr      error
	createdTask   *model.Task
	createTaskErr error
	taskInputs    []model.TaskInput
	updatedTask   *model.Task
	updateTaskErr error
	taskUpdates   []any
	deleteTaskErr error

	withSubtasks     *model.TaskWithSubtasks
	withSubtasksErr  error
	subtaskInputs    []model.SubtaskInput
	createSubtaskErr error
	deleteSubtaskErr error

	estimate       *model.DayEstimate
	estimateErr    error
	questions      []string
	questionsErr   error
	schedule       *model.ReminderSchedule
	scheduleErr    error
	scheduleEmails []string
}

func (s *stubAPI) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *stubAPI) called(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (s *stubAPI) Dashboard(ctx context.Context, userID int) (*model.Dashboard, error) {
	s.record("Dashboard")
	return s.dashboard, s.dashboardErr
}

func (s *stubAPI) Analytics(ctx context.Context, userID int) (*model.Analytics, error) {
	s.record("Analytics")
	return s.analytics, s.analyticsErr
}

func (s *stubAPI) ListPlans(ctx context.Context, userID int) ([]model.Plan, error) {
	s.record("ListPlans")
	return s.plans, s.plansErr
}

func (s *stubAPI) GetPlan(ctx context.Context, planID int) (*model.Plan, error) {
	s.record("GetPlan")
	if s.getPlanErr != nil {
		return nil, s.getPlanErr
	}
	plan := *s.plan
	return &plan, nil
}

func (s *stubAPI) CreatePlan(ctx context.Context, userID int, input model.PlanInput) (*model.Plan, error) {
	s.record("CreatePlan")
	s.planInputs = append(s.planInputs, input)
	return s.createdPlan, s.createPlanErr
}

func (s *stubAPI) UpdatePlan(ctx context.Context, planID int, update model.PlanUpdate) (*model.Plan, error) {
	s.record("UpdatePlan")
	return s.updatedPlan, s.updatePlanErr
}

func (s *stubAPI) DeletePlan(ctx context.Context, planID int) error {
	s.record("DeletePlan")
	return s.deletePlanErr
}

func (s *stubAPI) PlanToTodos(ctx context.Context, planID int) error {
	s.record("PlanToTodos")
	return s.toTodosErr
}

func (s *stubAPI) ListTodos(ctx context.Context, userID int, filter model.TodoFilter) ([]model.Todo, error) {
	s.record("ListTodos")
	s.todoFilters = append(s.todoFilters, filter)
	return s.todos, s.todosErr
}

func (s *stubAPI) CreateTodo(ctx context.Context, userID int, input model.TodoInput) (*model.Todo, error) {
	s.record("CreateTodo")
	s.todoInputs = append(s.todoInputs, input)
	return &model.Todo{ID: 99, Title: input.Title}, nil
}

func (s *stubAPI) UpdateTodo(ctx context.Context, todoID int, updates any) error {
	s.record("UpdateTodo")
	s.todoUpdates = append(s.todoUpdates, updates)
	return s.updateTodoErr
}

func (s *stubAPI) DeleteTodo(ctx context.Context, todoID int) error {
	s.record("DeleteTodo")
	return s.deleteTodoErr
}

func (s *stubAPI) ListTasks(ctx context.Context, userID, planID int) ([]model.Task, error) {
	s.record("ListTasks")
	return append([]model.Task(nil), s.tasks...), s.tasksErr
}

func (s *stubAPI) CreateTask(ctx context.Context, input model.TaskInput) (*model.Task, error) {
	s.record("CreateTask")
	s.taskInputs = append(s.taskInputs, input)
	return s.createdTask, s.createTaskErr
}

func (s *stubAPI) UpdateTask(ctx context.Context, taskID int, updates any) (*model.Task, error) {
	s.record("UpdateTask")
	s.taskUpdates = append(s.taskUpdates, updates)
	return s.updatedTask, s.updateTaskErr
}

func (s *stubAPI) DeleteTask(ctx context.Context, taskID int) error {
	s.record("DeleteTask")
	return s.deleteTaskErr
}

func (s *stubAPI) TaskWithSubtasks(ctx context.Context, userID, taskID int) (*model.TaskWithSubtasks, error) {
	s.record("TaskWithSubtasks")
	return s.withSubtasks, s.withSubtasksErr
}

func (s *stubAPI) CreateSubtask(ctx context.Context, userID, taskID int, input model.SubtaskInput) error {
	s.record("CreateSubtask")
	s.subtaskInputs = append(s.subtaskInputs, input)
	return s.createSubtaskErr
}

func (s *stubAPI) DeleteSubtask(ctx context.Context, subtaskID int) error {
	s.record("DeleteSubtask")
	return s.deleteSubtaskErr
}

func (s *stubAPI) EstimateDays(ctx context.Context, goal string) (*model.DayEstimate, error) {
	s.record("EstimateDays")
	return s.estimate, s.estimateErr
}

func (s *stubAPI) FollowUpQuestions(ctx context.Context, goal string, planType model.PlanType) ([]string, error) {
	s.record("FollowUpQuestions")
	return s.questions, s.questionsErr
}

func (s *stubAPI) ScheduleReminders(ctx context.Context, planID int, email string) (*model.ReminderSchedule, error) {
	s.record("ScheduleReminders")
	s.scheduleEmails = append(s.scheduleEmails, email)
	return s.schedule, s.scheduleErr
}

// assertBalanced 检查加载指示的显示与隐藏次数一致
func assertBalanced(t *testing.T, fb *FeedbackRecorder) {
	t.Helper()
	shown, hidden := fb.LoadingCalls()
	if shown != hidden || fb.Loading() {
		t.Fatalf("loading not balanced: show=%d hide=%d", shown, hidden)
	}
}

func hasToast(fb *FeedbackRecorder, level ToastLevel, message string) bool {
	for _, toast := range fb.Toasts() {
		if toast.Level == level && toast.Message == message {
			return true
		}
	}
	return false
}
