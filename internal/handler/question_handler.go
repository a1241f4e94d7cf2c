package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/model"
)

// ShowQuestions 拉取 AI 反问并打开问答弹窗
func (a *API) ShowQuestions(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	goal := c.Query("goal")
	planType := model.PlanType(c.DefaultQuery("plan_type", string(model.PlanTypeDaily)))
	if err := a.questions.Open(c.Request.Context(), ws, fb, goal, planType); err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderHTML(c, fb, http.StatusOK, "question_modal", gin.H{"Questions": ws.Questions})
}

// AnswerQuestion 保存一个回答并返回最新进度
func (a *API) AnswerQuestion(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		badRequest(c, fb, "无效的问题序号")
		return
	}

	progress, err := a.questions.Answer(ws, index, c.PostForm("answer"))
	if err != nil {
		respondError(c, fb, err)
		return
	}
	a.renderHTML(c, fb, http.StatusOK, "question_progress", gin.H{"Progress": progress})
}

// SubmitAnswers 结束问答并关闭弹窗
func (a *API) SubmitAnswers(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	if _, err := a.questions.Submit(ws, fb); err != nil {
		respondError(c, fb, err)
		return
	}

	fb.closeModal(subModal)
	respondNoContent(c, fb)
}
