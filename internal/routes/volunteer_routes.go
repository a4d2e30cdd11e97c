package routes

import (
	"goodness_grid/internal/controllers"
	"goodness_grid/internal/middleware"

	"github.com/gin-gonic/gin"
)

func VolunteerRoutes(r *gin.Engine) {
	volunteer := r.Group("/volunteer")
	volunteer.Use(middleware.RequireAuthWithRole("volunteer"))
	{
		volunteer.GET("/pickups", controllers.PendingPickups)
		volunteer.POST("/pickups/:id/accept", controllers.AcceptPickup)
		volunteer.GET("/assignments", controllers.MyAssignments)
		volunteer.POST("/assignments/:id/complete", controllers.CompleteDelivery)
	}
}
