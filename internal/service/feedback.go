package service

import "sync"

// ToastLevel 决定提示的图标与样式
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastInfo    ToastLevel = "info"
)

// Toast 是一条用户可见的提示
type Toast struct {
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
}

// Feedback 承载加载指示与提示消息，所有业务操作都通过它向用户反馈
type Feedback interface {
	ShowLoading()
	HideLoading()
	Toast(level ToastLevel, message string)
}

// FeedbackRecorder 记录一次请求内产生的反馈，供 HTTP 层输出或测试断言
type FeedbackRecorder struct {
	mu      sync.Mutex
	loading int
	shown   int
	hidden  int
	toasts  []Toast
}

// NewFeedbackRecorder 构造空的 FeedbackRecorder
func NewFeedbackRecorder() *FeedbackRecorder {
	return &FeedbackRecorder{}
}

func (r *FeedbackRecorder) ShowLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading++
	r.shown++
}

func (r *FeedbackRecorder) HideLoading() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loading > 0 {
		r.loading--
	}
	r.hidden++
}

func (r *FeedbackRecorder) Toast(level ToastLevel, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Level: level, Message: message})
}

// Loading 判断加载指示是否仍在显示
func (r *FeedbackRecorder) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading > 0
}

// LoadingCalls 返回 show/hide 的调用次数
func (r *FeedbackRecorder) LoadingCalls() (shown, hidden int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shown, r.hidden
}

// Toasts 返回已记录提示的副本
func (r *FeedbackRecorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// LastToast 返回最后一条提示
func (r *FeedbackRecorder) LastToast() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}
