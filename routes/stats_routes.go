package routes

import (
	"github.com/freshcheck/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupStatsRoutes(protected *gin.RouterGroup, statsController *controllers.StatsController) {
	stats := protected.Group("/stats")
	{
		stats.GET("/dashboard", statsController.GetDashboardStats)
	}
}
