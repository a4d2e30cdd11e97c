package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goodness_grid/internal/config"
	"goodness_grid/internal/models"
	"goodness_grid/internal/services"
)

type donationInput struct {
	Type          string     `json:"type" binding:"required"`
	Description   string     `json:"description" binding:"required"`
	Quantity      string     `json:"quantity" binding:"required"`
	PickupAddress string     `json:"pickup_address" binding:"required"`
	PickupTime    *time.Time `json:"pickup_time"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	Notes         string     `json:"notes"`
}

// PostDonation lets the authenticated donor publish a new posting.
func PostDonation(c *gin.Context) {
	var input donationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation input: " + err.Error()})
		return
	}

	donorID := authedUserID(c)
	donationID, err := services.CreateDonation(config.DB, donorID, services.DonationInput{
		Type:          input.Type,
		Description:   input.Description,
		Quantity:      input.Quantity,
		PickupAddress: input.PickupAddress,
		PickupTime:    input.PickupTime,
		ExpiryDate:    input.ExpiryDate,
		Notes:         input.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"donation_id": donationID})
}

// BrowseDonations lists available donations, optionally narrowed by a
// search keyword and a type filter (?search=rice&type=food). Without
// filters this is the plain available listing.
func BrowseDonations(c *gin.Context) {
	search := c.Query("search")
	typeFilter := c.DefaultQuery("type", "all")

	var (
		rows []services.DonationRow
		err  error
	)
	if search != "" || typeFilter != "all" {
		rows, err = services.SearchDonations(config.DB, search, typeFilter, models.DonationAvailable)
	} else {
		rows, err = services.ListDonations(config.DB, models.DonationAvailable)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GetDonation returns one donation with its donor identity.
func GetDonation(c *gin.Context) {
	donationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	row, err := services.GetDonation(config.DB, donationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donation": row})
}

// MyDonations lists everything the authenticated donor has posted.
func MyDonations(c *gin.Context) {
	donorID := authedUserID(c)

	donations, err := services.ListDonationsByDonor(config.DB, donorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": donations})
}
