package routes

import (
	"github.com/freshcheck/api-go/controllers"
	"github.com/freshcheck/api-go/middleware"
	"github.com/freshcheck/api-go/models"
	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	admin := middleware.Authorize(models.RoleAdmin)
	inspector := middleware.Authorize(models.RoleInspector)

	reports := protected.Group("/reports")
	{
		// Visibility is applied per role inside the handlers.
		reports.GET("", reportController.ListReports)
		reports.GET("/:id", reportController.GetReport)
		reports.GET("/:id/history", reportController.GetReportHistory)

		// Inspector workflow
		reports.POST("", inspector, reportController.CreateReport)
		reports.PUT("/:id", inspector, reportController.UpdateReport)
		reports.PUT("/:id/submit", inspector, reportController.SubmitReport)

		// Review
		reports.PUT("/:id/approve", admin, reportController.ApproveReport)
		reports.PUT("/:id/reject", admin, reportController.RejectReport)
		reports.POST("/:id/summary", admin, reportController.RefreshSummary)
	}
}
