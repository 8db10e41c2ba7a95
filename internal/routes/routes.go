package routes

import (
	"github.com/gin-gonic/gin"

	"teamtask-api/internal/handlers"
	"teamtask-api/internal/middleware"
	"teamtask-api/internal/models"
)

// SetupRoutes assembles the router around the handler set.
func SetupRoutes(api *handlers.API) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "TeamTask API is running",
		})
	})

	// Public routes (no authentication required)
	apiGroup := ginRouter.Group("/api")
	{
		apiGroup.POST("/login", api.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := apiGroup.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", api.GetTasks)
		protectedRoutes.GET("/tasks/:id", api.GetTaskByID)
		protectedRoutes.POST("/tasks", api.CreateTask)
		protectedRoutes.PUT("/tasks/:id", api.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/status", api.UpdateTaskStatus)
		protectedRoutes.DELETE("/tasks/:id", api.DeleteTask)

		// Comment endpoints
		protectedRoutes.GET("/tasks/:id/comments", api.GetComments)
		protectedRoutes.POST("/tasks/:id/comments", api.CreateComment)
		protectedRoutes.DELETE("/comments/:id", api.DeleteComment)

		// Project endpoints
		protectedRoutes.GET("/projects", api.GetProjects)
		protectedRoutes.POST("/projects",
			middleware.RequireRole(models.RoleAdmin, models.RoleManager), api.CreateProject)
		protectedRoutes.PUT("/projects/:id", api.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", api.DeleteProject)

		// Notification endpoints
		protectedRoutes.GET("/notifications", api.GetNotifications)
		protectedRoutes.PATCH("/notifications/:id/read", api.MarkNotificationRead)
		protectedRoutes.POST("/notifications/read-all", api.MarkAllNotificationsRead)
		protectedRoutes.DELETE("/notifications/:id", api.DeleteNotification)
		protectedRoutes.POST("/notifications/deadline-sweep",
			middleware.RequireRole(models.RoleAdmin), api.DeadlineSweep)

		// Staff endpoint
		protectedRoutes.GET("/staff", api.GetStaff)

		// Notification push channel
		protectedRoutes.GET("/ws", api.WebSocket)
	}

	return ginRouter
}
