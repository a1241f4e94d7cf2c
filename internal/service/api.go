package service

import (
	"context"

	"github.com/lifesteward/internal/model"
)

// PlannerAPI 描述前端依赖的计划服务接口，由 apiclient.Client 实现
type PlannerAPI interface {
	Dashboard(ctx context.Context, userID int) (*model.Dashboard, error)
	Analytics(ctx context.Context, userID int) (*model.Analytics, error)

	ListPlans(ctx context.Context, userID int) ([]model.Plan, error)
	GetPlan(ctx context.Context, planID int) (*model.Plan, error)
	CreatePlan(ctx context.Context, userID int, input model.PlanInput) (*model.Plan, error)
	UpdatePlan(ctx context.Context, planID int, update model.PlanUpdate) (*model.Plan, error)
	DeletePlan(ctx context.Context, planID int) error
	PlanToTodos(ctx context.Context, planID int) error

	ListTodos(ctx context.Context, userID int, filter model.TodoFilter) ([]model.Todo, error)
	CreateTodo(ctx context.Context, userID int, input model.TodoInput) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todoID int, updates any) error
	DeleteTodo(ctx context.Context, todoID int) error

	ListTasks(ctx context.Context, userID, planID int) ([]model.Task, error)
	CreateTask(ctx context.Context, input model.TaskInput) (*model.Task, error)
	UpdateTask(ctx context.Context, taskID int, updates any) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID int) error

	TaskWithSubtasks(ctx context.Context, userID, taskID int) (*model.TaskWithSubtasks, error)
	CreateSubtask(ctx context.Context, userID, taskID int, input model.SubtaskInput) error
	DeleteSubtask(ctx context.Context, subtaskID int) error

	EstimateDays(ctx context.Context, goal string) (*model.DayEstimate, error)
	FollowUpQuestions(ctx context.Context, goal string, planType model.PlanType) ([]string, error)
	ScheduleReminders(ctx context.Context, planID int, email string) (*model.ReminderSchedule, error)
}

// LocalStore 是浏览器 localStorage 的服务端对应物
type LocalStore interface {
	Put(userID int, key string, value any) error
}
