package routes

import (
	"net/http"

	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/middleware"
	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler the API mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Forms      *controllers.FormController
	Guidelines *controllers.GuidelineController
	Reports    *controllers.ReportController
	Uploads    *controllers.UploadController
	Stats      *controllers.StatsController
}

func SetupRoutes(r *gin.Engine, ctrl *Controllers, secret []byte) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	public := r.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		public.POST("/auth/login", ctrl.Auth.Login)
		public.POST("/auth/refresh", ctrl.Auth.Refresh)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.Authenticate(secret))
	{
		protected.POST("/auth/logout", ctrl.Auth.Logout)
		protected.GET("/auth/me", ctrl.Auth.Me)

		SetupUserRoutes(protected, ctrl.Users)
		SetupFormRoutes(protected, ctrl.Forms)
		SetupGuidelineRoutes(protected, ctrl.Guidelines)
		SetupReportRoutes(protected, ctrl.Reports)
		SetupUploadRoutes(protected, ctrl.Uploads)
		SetupStatsRoutes(protected, ctrl.Stats)
	}
}
