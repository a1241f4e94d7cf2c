package service

import "errors"

var (
	// ErrNotConfirmed 在破坏性操作未经用户确认时返回，不会发出任何请求
	ErrNotConfirmed = errors.New("operation not confirmed")
	// ErrNoPlanOpen 在计划详情未打开时返回
	ErrNoPlanOpen = errors.New("no plan detail open")
	// ErrNoTaskSelected 在子任务弹窗未选中任务时返回
	ErrNoTaskSelected = errors.New("no task selected for subtasks")
	// ErrNoQuestions 在 AI 问答未开始时返回
	ErrNoQuestions = errors.New("no follow-up questions loaded")
	// ErrTaskNotFound 在本地副本中找不到任务时返回
	ErrTaskNotFound = errors.New("task not found in plan")
	// ErrTodoNotFound 在本地列表中找不到待办时返回
	ErrTodoNotFound = errors.New("todo not found")
)

// ValidationError 表示客户端校验失败，请求不会发往服务端
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation 判断错误是否为客户端校验失败
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// invalid 提示并返回校验错误
func invalid(fb Feedback, message string) error {
	fb.Toast(ToastError, message)
	return &ValidationError{Message: message}
}
