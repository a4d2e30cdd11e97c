package routes

import (
	"goodness_grid/internal/controllers"
	"goodness_grid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DonorRoutes(r *gin.Engine) {
	donor := r.Group("/donor")
	donor.Use(middleware.RequireAuthWithRole("donor"))
	{
		donor.POST("/donations", controllers.PostDonation)
		donor.GET("/donations", controllers.MyDonations)
	}
}
