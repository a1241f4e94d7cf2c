package session

import (
	"sort"
	"strings"

	"github.com/lifesteward/internal/model"
)

// SubtaskSession 记录子任务弹窗当前针对的任务。
// 选中的任务 ID 只保存在服务端会话中，页面不携带该状态。
type SubtaskSession struct {
	TaskID   int
	Task     model.Task
	Subtasks []model.Subtask
}

// Answer 是对某个 AI 问题的回答
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Progress 是问答进度
type Progress struct {
	Answered int
	Total    int
}

// Percent 返回完成百分比
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total) * 100
}

// QuestionSession 是一次 AI 反问问答
type QuestionSession struct {
	Goal      string
	PlanType  model.PlanType
	Questions []string
	answers   map[int]Answer
}

// NewQuestionSession 以空白回答开始新的问答
func NewQuestionSession(goal string, planType model.PlanType, questions []string) *QuestionSession {
	return &QuestionSession{
		Goal:      goal,
		PlanType:  planType,
		Questions: append([]string(nil), questions...),
		answers:   make(map[int]Answer),
	}
}

// SetAnswer 非空回答写入，空白回答删除；越界的序号被忽略
func (q *QuestionSession) SetAnswer(index int, text string) Progress {
	if index < 0 || index >= len(q.Questions) {
		return q.Progress()
	}
	text = strings.TrimSpace(text)
	if text == "" {
		delete(q.answers, index)
	} else {
		q.answers[index] = Answer{Question: q.Questions[index], Answer: text}
	}
	return q.Progress()
}

// AnswerText 返回某个问题已保存的回答
func (q *QuestionSession) AnswerText(index int) string {
	return q.answers[index].Answer
}

// Progress 返回已回答/总数
func (q *QuestionSession) Progress() Progress {
	return Progress{Answered: len(q.answers), Total: len(q.Questions)}
}

// Answers 按问题序号返回回答的副本
func (q *QuestionSession) Answers() map[int]Answer {
	out := make(map[int]Answer, len(q.answers))
	for k, v := range q.answers {
		out[k] = v
	}
	return out
}

// AnsweredIndexes 返回已回答问题的有序序号
func (q *QuestionSession) AnsweredIndexes() []int {
	idx := make([]int, 0, len(q.answers))
	for k := range q.answers {
		idx = append(idx, k)
	}
	sort.Ints(idx)
	return idx
}

// ReminderSession 记录提醒弹窗对应的计划
type ReminderSession struct {
	PlanID int
}
