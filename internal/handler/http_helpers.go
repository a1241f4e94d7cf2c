package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/service"
)

// statusStopPolling 让 htmx 停止 hx-trigger="every …" 轮询
const statusStopPolling = 286

func parseIntParam(c *gin.Context, key string) (int, error) {
	raw := c.Param(key)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return id, nil
}

// confirmed 判断破坏性操作是否带有浏览器确认标记，DELETE 请求的标记在查询参数中
func confirmed(c *gin.Context) bool {
	raw := c.PostForm("confirmed")
	if raw == "" {
		raw = c.Query("confirmed")
	}
	ok, _ := strconv.ParseBool(strings.TrimSpace(raw))
	return ok
}

// formBool 解析复选框，未勾选时浏览器不会提交该字段
func formBool(c *gin.Context, key string) bool {
	ok, _ := strconv.ParseBool(strings.TrimSpace(c.PostForm(key)))
	return ok
}

// respondNoContent 只输出反馈头，不替换任何内容
func respondNoContent(c *gin.Context, fb *htmxFeedback) {
	fb.flush(c)
	c.Status(http.StatusNoContent)
}

// respondError 把业务错误映射为状态码；提示已由服务写入反馈
func respondError(c *gin.Context, fb *htmxFeedback, err error) {
	status := http.StatusBadGateway
	switch {
	case service.IsValidation(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotConfirmed):
		status = http.StatusNoContent
	case errors.Is(err, service.ErrNoPlanOpen),
		errors.Is(err, service.ErrNoTaskSelected),
		errors.Is(err, service.ErrNoQuestions):
		status = http.StatusConflict
		fb.Toast(service.ToastError, "页面状态已过期，请重新打开")
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrTodoNotFound):
		status = http.StatusNotFound
		fb.Toast(service.ToastError, "记录不存在或已被删除")
	default:
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	fb.flush(c)
	c.Status(status)
}

func badRequest(c *gin.Context, fb *htmxFeedback, message string) {
	fb.Toast(service.ToastError, message)
	fb.flush(c)
	c.Status(http.StatusBadRequest)
}
