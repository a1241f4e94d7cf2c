package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/session"
)

// ShowIndex 渲染完整页面，默认停留在上次的视图
func (a *API) ShowIndex(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	section := ws.Section
	if section == "" {
		section = session.SectionDashboard
	}
	a.pages.ShowSection(c.Request.Context(), ws, fb, string(section))

	a.renderHTML(c, fb, http.StatusOK, "index", nil)
}

// ShowSection 切换顶层视图；未知视图不做任何事
func (a *API) ShowSection(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	if _, ok := a.pages.ShowSection(c.Request.Context(), ws, fb, c.Param("name")); !ok {
		respondNoContent(c, fb)
		return
	}

	a.renderHTML(c, fb, http.StatusOK, "section", nil)
}

// RefreshDashboard 供仪表板轮询；离开仪表板后返回 286 让浏览器停止轮询
func (a *API) RefreshDashboard(c *gin.Context) {
	ws := workspace(c)
	fb := newFeedback()

	active, err := a.dashboard.Refresh(c.Request.Context(), ws, fb)
	if !active {
		fb.flush(c)
		c.Status(statusStopPolling)
		return
	}
	if err != nil {
		respondError(c, fb, err)
		return
	}

	a.renderHTML(c, fb, http.StatusOK, "dashboard_stats", nil)
}
