package handler

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/session"
)

const (
	workspaceSessionKey = "workspace"
	workspaceContextKey = "__workspace"
)

// WorkspaceRequired 根据 cookie 会话取出（或新建）Workspace，并在整个请求期间持有其锁
func (a *API) WorkspaceRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, _ := sess.Get(workspaceSessionKey).(string)

		ws := a.registry.Acquire(id)
		if ws.ID != id {
			sess.Set(workspaceSessionKey, ws.ID)
			if err := sess.Save(); err != nil {
				log.Printf("[SESSION] save workspace id: %v", err)
			}
		}

		ws.Lock()
		defer ws.Unlock()

		c.Set(workspaceContextKey, ws)
		c.Next()
	}
}

func workspace(c *gin.Context) *session.Workspace {
	if cached, exists := c.Get(workspaceContextKey); exists {
		if ws, ok := cached.(*session.Workspace); ok {
			return ws
		}
	}
	return session.NewWorkspace("")
}
