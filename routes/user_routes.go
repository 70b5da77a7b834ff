package routes

import (
	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/middleware"
	"github.com/freshcheck/api-go/models"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	users.Use(middleware.Authorize(models.RoleAdmin))
	{
		users.GET("", userController.ListUsers)
		users.POST("", userController.CreateUser)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}
}
