package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

func subtaskFixture() *stubAPI {
	return &stubAPI{
		withSubtasks: &model.TaskWithSubtasks{
			Task:     model.Task{ID: 10, Description: "阅读文档"},
			Subtasks: []model.Subtask{{ID: 100, ParentTaskID: 10, Title: "第一章", Duration: 30, Status: model.TaskStatusPending}},
		},
	}
}

func TestBuildSubtaskInputDefaults(t *testing.T) {
	input, problem := BuildSubtaskInput(SubtaskForm{Title: " 第二章 ", Duration: "abc", Priority: ""})
	if problem != "" {
		t.Fatalf("unexpected problem: %q", problem)
	}
	if input.Title != "第二章" || input.Duration != 30 || input.Priority != model.PriorityMedium || input.OrderIndex != 0 {
		t.Fatalf("unexpected input: %+v", input)
	}

	if _, problem := BuildSubtaskInput(SubtaskForm{Title: ""}); problem != "请输入子任务标题" {
		t.Fatalf("unexpected problem: %q", problem)
	}
}

func TestSubtaskOperationsRequireSelectedTask(t *testing.T) {
	api := subtaskFixture()
	svc := NewSubtaskService(api, 1)
	ws := session.NewWorkspace("w")
	fb := NewFeedbackRecorder()

	if err := svc.Add(context.Background(), ws, fb, SubtaskForm{Title: "x"}); !errors.Is(err, ErrNoTaskSelected) {
		t.Fatalf("expected ErrNoTaskSelected, got %v", err)
	}
	if err := svc.Complete(context.Background(), ws, fb, 100); !errors.Is(err, ErrNoTaskSelected) {
		t.Fatalf("expected ErrNoTaskSelected, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("unexpected requests: %v", api.calls)
	}
}

func TestSubtaskAddReloadsSelectedTask(t *testing.T) {
	api := subtaskFixture()
	svc := NewSubtaskService(api, 1)
	ws := session.NewWorkspace("w")
	fb := NewFeedbackRecorder()

	if err := svc.Open(context.Background(), ws, fb, 10); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if ws.Subtasks.TaskID != 10 || len(ws.Subtasks.Subtasks) != 1 {
		t.Fatalf("unexpected subtask session: %+v", ws.Subtasks)
	}

	if err := svc.Add(context.Background(), ws, fb, SubtaskForm{Title: "第二章", Duration: "45", Priority: "高"}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if api.called("TaskWithSubtasks") != 2 {
		t.Fatalf("subtasks should reload after add: %v", api.calls)
	}
	if api.subtaskInputs[0].Duration != 45 || api.subtaskInputs[0].Priority != model.PriorityHigh {
		t.Fatalf("unexpected input: %+v", api.subtaskInputs[0])
	}
	if !hasToast(fb, ToastSuccess, "子任务添加成功") {
		t.Fatalf("missing toast: %+v", fb.Toasts())
	}
	assertBalanced(t, fb)
}

func TestCompleteSubtaskSendsTimestamp(t *testing.T) {
	api := subtaskFixture()
	svc := NewSubtaskService(api, 1)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	ws := session.NewWorkspace("w")
	fb := NewFeedbackRecorder()

	if err := svc.Open(context.Background(), ws, fb, 10); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := svc.Complete(context.Background(), ws, fb, 100); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}

	update := api.taskUpdates[0].(model.TaskStatusUpdate)
	if update.Status != model.TaskStatusCompleted || update.CompletedAt == nil || *update.CompletedAt != "2024-05-01T08:00:00Z" {
		t.Fatalf("unexpected update: %+v", update)
	}
	assertBalanced(t, fb)
}

func TestSubtaskDeleteFailureKeepsSelection(t *testing.T) {
	api := subtaskFixture()
	api.deleteSubtaskErr = errors.New("forbidden")
	svc := NewSubtaskService(api, 1)
	ws := session.NewWorkspace("w")
	fb := NewFeedbackRecorder()

	if err := svc.Open(context.Background(), ws, fb, 10); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), ws, fb, 100, false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if err := svc.Delete(context.Background(), ws, fb, 100, true); err == nil {
		t.Fatal("expected error")
	}
	if ws.Subtasks == nil || ws.Subtasks.TaskID != 10 {
		t.Fatal("selection should survive a failed delete")
	}
	if !hasToast(fb, ToastError, "删除子任务失败: forbidden") {
		t.Fatalf("missing toast: %+v", fb.Toasts())
	}
	assertBalanced(t, fb)
}
