package handler

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/service"
	"github.com/lifesteward/internal/view"
)

// 浏览器端监听的事件名
const (
	eventShowToast    = "showToast"
	eventCloseModal   = "closeModal"
	eventPlansChanged = "plansChanged"
	eventTodosChanged = "todosChanged"
	eventPlanCreated  = "planCreated"
)

// 两个弹窗的 DOM id
const (
	mainModal = "app-modal"
	subModal  = "sub-modal"
)

// htmxFeedback 把一次请求内的反馈收集到 HX-Trigger 响应头
type htmxFeedback struct {
	*service.FeedbackRecorder
	events  map[string]any
	flushed bool
}

func newFeedback() *htmxFeedback {
	return &htmxFeedback{
		FeedbackRecorder: service.NewFeedbackRecorder(),
		events:           make(map[string]any),
	}
}

// trigger 登记一个浏览器事件，detail 为 nil 时发送空对象
func (f *htmxFeedback) trigger(name string, detail any) {
	if detail == nil {
		detail = gin.H{}
	}
	f.events[name] = detail
}

func (f *htmxFeedback) closeModal(id string) {
	f.trigger(eventCloseModal, gin.H{"modal": id})
}

// flush 写入 HX-Trigger；必须在响应体之前调用，重复调用无效
func (f *htmxFeedback) flush(c *gin.Context) {
	if f.flushed {
		return
	}
	f.flushed = true

	if f.Loading() {
		shown, hidden := f.LoadingCalls()
		log.Printf("[FEEDBACK] %s %s left loading visible (show=%d hide=%d)", c.Request.Method, c.FullPath(), shown, hidden)
	}

	if toasts := f.Toasts(); len(toasts) > 0 {
		items := make([]gin.H, 0, len(toasts))
		for _, t := range toasts {
			items = append(items, gin.H{
				"level":   t.Level,
				"message": t.Message,
				"icon":    view.ToastIcon(string(t.Level)),
			})
		}
		f.events[eventShowToast] = gin.H{"toasts": items}
	}
	if len(f.events) == 0 {
		return
	}

	payload, err := json.Marshal(f.events)
	if err != nil {
		log.Printf("[FEEDBACK] encode HX-Trigger: %v", err)
		return
	}
	c.Header("HX-Trigger", string(payload))
}
