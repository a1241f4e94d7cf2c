package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lifesteward/internal/handler"
	"github.com/lifesteward/internal/view"
)

const sessionName = "lifesteward_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, renderer *view.Renderer, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，cookie 中只保存 workspace id
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetHTMLTemplate(renderer.Template())

	// 静态文件服务
	r.StaticFS("/static", http.FS(view.Static()))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// SSE 长连接不持有会话锁
	r.GET("/events", api.StreamEvents)

	app := r.Group("")
	app.Use(api.WorkspaceRequired())
	{
		app.GET("/", api.ShowIndex)
		app.GET("/sections/:name", api.ShowSection)
		app.GET("/dashboard/refresh", api.RefreshDashboard)

		plans := app.Group("/plans")
		{
			plans.GET("/list", api.ListPlans)
			plans.GET("/new", api.ShowCreatePlan)
			plans.POST("", api.CreatePlan)
			plans.GET("/:id", api.ShowPlanDetail)
			plans.POST("/:id/to-todos", api.PlanToTodos)

			detail := plans.Group("/detail")
			{
				detail.POST("/view", api.PlanDetailViewMode)
				detail.POST("/edit", api.PlanDetailEditMode)
				detail.PUT("", api.UpdatePlanDetail)
				detail.DELETE("", api.DeletePlanDetail)

				detail.POST("/tasks/new", api.BeginAddTask)
				detail.POST("/tasks/new/cancel", api.CancelAddTask)
				detail.POST("/tasks", api.CreateTask)
				detail.POST("/tasks/cancel", api.CancelTaskEdit)
				detail.GET("/tasks/:taskId/edit", api.BeginTaskEdit)
				detail.PUT("/tasks/:taskId", api.UpdateTask)
				detail.POST("/tasks/:taskId/toggle", api.ToggleTask)
				detail.DELETE("/tasks/:taskId", api.DeleteTask)
			}
		}

		todos := app.Group("/todos")
		{
			todos.GET("", api.FilterTodos)
			todos.GET("/list", api.ListTodos)
			todos.GET("/new", api.ShowCreateTodo)
			todos.POST("", api.CreateTodo)
			todos.GET("/:id", api.ShowTodo)
			todos.GET("/:id/edit", api.EditTodo)
			todos.PUT("/:id", api.UpdateTodo)
			todos.POST("/:id/toggle", api.ToggleTodo)
			todos.DELETE("/:id", api.DeleteTodo)
		}

		app.GET("/tasks/:id/subtasks", api.ShowSubtasks)
		app.POST("/subtasks", api.CreateSubtask)
		app.POST("/subtasks/:id/complete", api.CompleteSubtask)
		app.DELETE("/subtasks/:id", api.DeleteSubtask)

		ai := app.Group("/ai")
		{
			ai.GET("/questions", api.ShowQuestions)
			ai.POST("/answers/:index", api.AnswerQuestion)
			ai.POST("/submit", api.SubmitAnswers)
			ai.POST("/estimate-days", api.EstimateDays)
		}

		app.GET("/reminders/:planId", api.ShowReminder)
		app.POST("/reminders", api.SetupReminders)
	}

	return r
}
