package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lostfound-hub/api-go/controllers"
	"github.com/lostfound-hub/api-go/lifecycle"
	"github.com/lostfound-hub/api-go/middleware"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, log *logrus.Logger) {
	registerValidators()

	store := lifecycle.NewGormStore(db)
	engine := lifecycle.New(store, lifecycle.NewNotifier(store, log), log)

	// Initialize controllers
	authController := controllers.NewAuthController(db, log)
	reportController := controllers.NewReportController(db, engine)
	claimController := controllers.NewClaimController(db, engine)
	adminController := controllers.NewAdminController(db, engine)
	notificationController := controllers.NewNotificationController(db)
	catalogController := controllers.NewCatalogController(db)
	statsController := controllers.NewStatsController(db)
	uploadController := controllers.NewUploadController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/verify-pin", authController.VerifyPin)
		public.POST("/resend-pin", authController.ResendPin)
		public.POST("/google-login", authController.GoogleLogin)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.GET("/profile", authController.GetProfile)

		protected.GET("/categories", catalogController.ListCategories)
		protected.GET("/locations", catalogController.ListLocations)

		SetupReportRoutes(protected, db, reportController, claimController)
		SetupClaimRoutes(protected, claimController)
		SetupNotificationRoutes(protected, notificationController)
		SetupUploadRoutes(protected, uploadController)
		SetupAdminRoutes(protected, adminController, statsController)
	}
}
