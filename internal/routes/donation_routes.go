package routes

import (
	"goodness_grid/internal/controllers"
	"goodness_grid/internal/middleware"

	"github.com/gin-gonic/gin"
)

// DonationRoutes exposes the marketplace to every authenticated role.
func DonationRoutes(r *gin.Engine) {
	donations := r.Group("/donations")
	donations.Use(middleware.RequireAuth())
	{
		donations.GET("", controllers.BrowseDonations)
		donations.GET("/:id", controllers.GetDonation)
	}
}
