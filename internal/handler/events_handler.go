package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

const heartbeatInterval = 30 * time.Second

// StreamEvents 以 SSE 推送到期的提醒，连接保持到浏览器断开
func (a *API) StreamEvents(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	notifications, cancel := a.hub.Subscribe(a.userID)
	defer cancel()

	c.SSEvent("connected", gin.H{"status": "connected"})
	c.Writer.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-notifications:
			if !ok {
				return
			}
			c.SSEvent("reminder", n)
			c.Writer.Flush()
		case <-ticker.C:
			c.SSEvent("heartbeat", gin.H{"time": time.Now().Format(time.RFC3339)})
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
