package service

import "sync"

// Notification 是推送给浏览器的一条到期提醒
type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	PlanID  int    `json:"plan_id"`
	TaskID  *int   `json:"task_id,omitempty"`
}

// NotificationTitle 是浏览器通知的标题
const NotificationTitle = "🤖 生活管家AI提醒"

const subscriberBuffer = 10

// NotificationHub 按用户维护 SSE 订阅者，推送时不阻塞，缓冲区满的订阅者会被跳过
type NotificationHub struct {
	mu      sync.RWMutex
	clients map[int]map[chan Notification]struct{}
}

// NewNotificationHub 构造空的 NotificationHub
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{clients: make(map[int]map[chan Notification]struct{})}
}

// Subscribe 为用户注册订阅，返回接收通道与取消函数
func (h *NotificationHub) Subscribe(userID int) (<-chan Notification, func()) {
	ch := make(chan Notification, subscriberBuffer)

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[chan Notification]struct{})
	}
	h.clients[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients[userID], ch)
			if len(h.clients[userID]) == 0 {
				delete(h.clients, userID)
			}
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

// Subscribers 返回用户当前的订阅数
func (h *NotificationHub) Subscribers(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish 推送通知，返回实际送达的订阅者数量
func (h *NotificationHub) Publish(userID int, n Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.clients[userID] {
		select {
		case ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}
