package routes

import (
	"goodness_grid/internal/controllers"
	"goodness_grid/internal/middleware"

	"github.com/gin-gonic/gin"
)

// UserRoutes covers the endpoints shared by every authenticated role.
func UserRoutes(r *gin.Engine) {
	r.GET("/dashboard", middleware.RequireAuth(), controllers.Dashboard)
	r.GET("/profile", middleware.RequireAuth(), controllers.GetProfile)
	r.PUT("/profile", middleware.RequireAuth(), controllers.UpdateProfile)
}
