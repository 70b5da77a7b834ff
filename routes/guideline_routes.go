package routes

import (
	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/middleware"
	"github.com/freshcheck/api-go/models"
	"github.com/gin-gonic/gin"
)

func SetupGuidelineRoutes(protected *gin.RouterGroup, guidelineController *controllers.GuidelineController) {
	admin := middleware.Authorize(models.RoleAdmin)

	guidelines := protected.Group("/guidelines")
	{
		guidelines.GET("", guidelineController.ListGuidelines)
		guidelines.GET("/:id", guidelineController.GetGuideline)

		guidelines.POST("", admin, guidelineController.CreateGuideline)
		guidelines.PUT("/:id", admin, guidelineController.UpdateGuideline)
		guidelines.DELETE("/:id", admin, guidelineController.DeleteGuideline)
	}
}
