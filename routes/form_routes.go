package routes

import (
	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/middleware"
	"github.com/freshcheck/api-go/models"
	"github.com/gin-gonic/gin"
)

func SetupFormRoutes(protected *gin.RouterGroup, formController *controllers.FormController) {
	admin := middleware.Authorize(models.RoleAdmin)

	forms := protected.Group("/forms")
	{
		forms.GET("", formController.ListForms)
		forms.GET("/:id", formController.GetForm)

		forms.POST("", admin, formController.CreateForm)
		forms.PUT("/:id", admin, formController.UpdateForm)
		forms.DELETE("/:id", admin, formController.DeleteForm)
	}
}
