package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lostfound-hub/api-go/controllers"
	"github.com/lostfound-hub/api-go/middleware"
)

func SetupAdminRoutes(rg *gin.RouterGroup, adminController *controllers.AdminController, statsController *controllers.StatsController) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/claims", adminController.ListClaims)
		admin.PUT("/claims/:id/status", adminController.DecideClaim)
		admin.POST("/claims/:id/handover", adminController.RecordHandover)
		admin.GET("/handovers", adminController.ListHandovers)
		admin.PUT("/reports/:id/confirm", adminController.ConfirmReport)

		admin.GET("/stats/overview", statsController.GetOverview)
		admin.GET("/stats/distributions", statsController.GetDistributions)
		admin.GET("/stats/trends", statsController.GetMonthlyTrends)
		admin.GET("/stats/top-reporters", statsController.GetTopReporters)
		admin.GET("/stats/export.csv", statsController.ExportCSV)
		admin.GET("/stats/export.xlsx", statsController.ExportXLSX)
	}
}
