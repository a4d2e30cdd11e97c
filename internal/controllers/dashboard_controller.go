package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goodness_grid/internal/config"
	"goodness_grid/internal/models"
	"goodness_grid/internal/services"
)

// Dashboard returns role-appropriate counters for the authenticated user.
func Dashboard(c *gin.Context) {
	userID := authedUserID(c)
	role, _ := c.MustGet("role").(string)

	switch role {
	case models.RoleDonor:
		dash, err := services.GetDonorDashboard(config.DB, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dashboard": dash})
	case models.RoleNgo:
		dash, err := services.GetNgoDashboard(config.DB, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dashboard": dash})
	case models.RoleVolunteer:
		dash, err := services.GetVolunteerDashboard(config.DB, userID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dashboard": dash})
	case models.RoleAdmin:
		stats, err := services.GetPlatformStats(config.DB)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"dashboard": stats})
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown role"})
	}
}
