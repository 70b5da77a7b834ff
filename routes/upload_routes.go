package routes

import (
	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/middleware"
	"github.com/freshcheck/api-go/models"
	"github.com/gin-gonic/gin"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	attachments := protected.Group("/reports/:id/attachments")
	attachments.Use(middleware.Authorize(models.RoleInspector))
	{
		// Presigned PUT for one evidence photo
		attachments.POST("/presign", uploadController.GetPresignedURL)

		// Attach once the object is in the bucket
		attachments.POST("/confirm", uploadController.ConfirmUpload)

		attachments.DELETE("/*key", uploadController.DeleteFile)
	}
}
