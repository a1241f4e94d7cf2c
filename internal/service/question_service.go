package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lifesteward/internal/localstore"
	"github.com/lifesteward/internal/model"
	"github.com/lifesteward/internal/session"
)

// UserPreferences 是 AI 问答结果在本地保存的形式
type UserPreferences struct {
	Goal      string                 `json:"goal"`
	Answers   map[int]session.Answer `json:"answers"`
	Timestamp string                 `json:"timestamp"`
}

// QuestionService 负责创建计划后的 AI 反问。
// 收集到的回答只保存在本地，暂不回传给计划生成流程。
type QuestionService struct {
	api    PlannerAPI
	store  LocalStore
	userID int
	now    func() time.Time
}

// NewQuestionService 构造 QuestionService
func NewQuestionService(api PlannerAPI, store LocalStore, userID int) *QuestionService {
	return &QuestionService{api: api, store: store, userID: userID, now: time.Now}
}

// Open 拉取问题并开始新的问答，旧的回答会被清空
func (s *QuestionService) Open(ctx context.Context, ws *session.Workspace, fb Feedback, goal string, planType model.PlanType) error {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return invalid(fb, "请填写目标描述")
	}
	if !planType.Valid() {
		planType = model.PlanTypeDaily
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	logAIExchange("questions", "request", goal, string(planType))
	questions, err := s.api.FollowUpQuestions(ctx, goal, planType)
	if err != nil {
		log.Printf("[AI] follow-up questions: %v", err)
		fb.Toast(ToastError, "获取AI问题失败: "+err.Error())
		return err
	}

	logAIExchange("questions", "response", questions...)

	ws.Questions = session.NewQuestionSession(goal, planType, questions)
	fb.Toast(ToastInfo, "🤖 AI想了解更多细节来为您优化计划！")
	return nil
}

// Answer 更新某个问题的回答并返回最新进度
func (s *QuestionService) Answer(ws *session.Workspace, index int, text string) (session.Progress, error) {
	if ws.Questions == nil {
		return session.Progress{}, ErrNoQuestions
	}
	return ws.Questions.SetAnswer(index, text), nil
}

// Submit 结束问答；有回答时保存到本地，返回保存的回答数
func (s *QuestionService) Submit(ws *session.Workspace, fb Feedback) (int, error) {
	if ws.Questions == nil {
		return 0, ErrNoQuestions
	}

	fb.ShowLoading()
	defer fb.HideLoading()

	answers := ws.Questions.Answers()
	if len(answers) == 0 {
		fb.Toast(ToastInfo, "您还没有回答任何问题，将使用标准计划")
		ws.Questions = nil
		return 0, nil
	}

	prefs := UserPreferences{
		Goal:      ws.Questions.Goal,
		Answers:   answers,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.store.Put(s.userID, localstore.KeyUserPreferences, prefs); err != nil {
		log.Printf("[AI] save preferences: %v", err)
		fb.Toast(ToastError, "提交失败: "+err.Error())
		return 0, err
	}

	fb.Toast(ToastSuccess, fmt.Sprintf("感谢您回答了%d个问题！AI将根据您的回答优化计划", len(answers)))
	ws.Questions = nil
	return len(answers), nil
}
