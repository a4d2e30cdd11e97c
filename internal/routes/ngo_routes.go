package routes

import (
	"goodness_grid/internal/controllers"
	"goodness_grid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func NgoRoutes(r *gin.Engine) {
	ngo := r.Group("/ngo")
	ngo.Use(middleware.RequireAuthWithRole("ngo"))
	{
		ngo.POST("/donations/:id/claim", controllers.ClaimDonation)
		ngo.GET("/claims", controllers.MyClaims)
	}
}
