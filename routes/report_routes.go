package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/controllers"
	"github.com/lostfound-hub/api-go/middleware"
)

func SetupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, reportController *controllers.ReportController, claimController *controllers.ClaimController) {
	reports := rg.Group("/reports")
	{
		reports.GET("", reportController.BrowseReports)
		reports.GET("/mine", reportController.MyReports)
		reports.GET("/:id", reportController.GetReport)
		reports.GET("/:id/claims", claimController.ClaimsByReport)
		reports.GET("/:id/found-prefill", reportController.FoundPrefill)
	}

	// Mutations require a verified email.
	verified := rg.Group("/reports")
	verified.Use(middleware.RequireVerified(db))
	{
		verified.POST("", reportController.CreateReport)
		verified.PUT("/:id", reportController.UpdateReport)
		verified.DELETE("/:id", reportController.DeleteReport)
		verified.POST("/:id/mark-as-found", reportController.MarkAsFound)
		verified.POST("/:id/confirm-return", reportController.ConfirmReturn)
		verified.POST("/:id/confirm-found-return", reportController.ConfirmFoundReturn)
		verified.POST("/:id/claims", claimController.SubmitClaim)
	}
}
