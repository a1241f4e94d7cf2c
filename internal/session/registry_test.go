package session

import (
	"testing"
	"time"
)

func TestRegistryAcquire(t *testing.T) {
	r := NewRegistry(time.Hour)

	ws := r.Acquire("")
	if ws.ID == "" {
		t.Fatal("new workspace should get an id")
	}
	if ws.Section != SectionDashboard {
		t.Fatalf("new workspace should start on the dashboard, got %s", ws.Section)
	}
	if again := r.Acquire(ws.ID); again != ws {
		t.Fatal("same id should return the same workspace")
	}
	if stale := r.Acquire("unknown-id"); stale.ID != "unknown-id" || r.Len() != 2 {
		t.Fatalf("unknown id should create a workspace, len=%d", r.Len())
	}
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	old := r.Acquire("old")
	now = now.Add(30 * time.Minute)
	r.Acquire("fresh")

	now = now.Add(45 * time.Minute)
	if removed := r.Sweep(); removed != 1 {
		t.Fatalf("expected 1 eviction, got %d", removed)
	}
	if r.Acquire("old") == old {
		t.Fatal("evicted workspace should not be returned")
	}
}

func TestParseSection(t *testing.T) {
	if _, ok := ParseSection("settings"); ok {
		t.Fatal("unknown section accepted")
	}
	if s, ok := ParseSection("todos"); !ok || s != SectionTodos {
		t.Fatalf("unexpected result %s %v", s, ok)
	}
}

func TestQuestionSessionProgress(t *testing.T) {
	q := NewQuestionSession("学习Go", "daily", []string{"a", "b", "c", "d"})

	q.SetAnswer(0, "一")
	q.SetAnswer(3, "四")
	p := q.SetAnswer(7, "越界")
	if p.Answered != 2 || p.Total != 4 || p.Percent() != 50 {
		t.Fatalf("unexpected progress: %+v", p)
	}

	p = q.SetAnswer(0, "   ")
	if p.Answered != 1 || q.AnswerText(0) != "" {
		t.Fatalf("blank answer should remove the entry: %+v", p)
	}
	if idx := q.AnsweredIndexes(); len(idx) != 1 || idx[0] != 3 {
		t.Fatalf("unexpected indexes: %v", idx)
	}
	if answers := q.Answers(); answers[3].Question != "d" || answers[3].Answer != "四" {
		t.Fatalf("unexpected answers: %+v", answers)
	}
	if (Progress{}).Percent() != 0 {
		t.Fatal("empty progress should be 0%")
	}
}
