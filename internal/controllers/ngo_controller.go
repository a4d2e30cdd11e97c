package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goodness_grid/internal/config"
	"goodness_grid/internal/services"
)

// ClaimDonation reserves an available donation for the authenticated NGO.
// A donation someone else already claimed comes back as a 409.
func ClaimDonation(c *gin.Context) {
	donationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ngoID := authedUserID(c)
	if err := services.ClaimDonation(config.DB, donationID, ngoID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donation claimed"})
}

// MyClaims lists the donations the authenticated NGO has claimed,
// together with each claim's transaction state.
func MyClaims(c *gin.Context) {
	ngoID := authedUserID(c)

	rows, err := services.ClaimedByNgo(config.DB, ngoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}
