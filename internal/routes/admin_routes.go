package routes

import (
	"goodness_grid/internal/controllers"
	"goodness_grid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", controllers.ListUsers)
		admin.POST("/users/:id/verify", controllers.VerifyNgo)
		admin.GET("/transactions", controllers.ListAllTransactions)
		admin.GET("/stats", controllers.PlatformStats)

		admin.GET("/analytics/donation-trend", controllers.DonationTrend)
		admin.GET("/analytics/donation-types", controllers.DonationTypeDistribution)
		admin.GET("/analytics/completion-rate", controllers.CompletionRateTrend)
		admin.GET("/analytics/user-growth", controllers.UserGrowth)
		admin.GET("/analytics/top-donors", controllers.TopDonors)

		admin.GET("/export/donations", controllers.ExportDonationsCSV)
		admin.GET("/export/transactions", controllers.ExportTransactionsCSV)
	}
}
