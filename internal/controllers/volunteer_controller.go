package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goodness_grid/internal/config"
	"goodness_grid/internal/services"
)

// PendingPickups shows the unassigned work queue every volunteer can
// pick from.
func PendingPickups(c *gin.Context) {
	rows, err := services.PendingPickups(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// AcceptPickup attaches the authenticated volunteer to a pending
// transaction. If another volunteer got there first the caller sees 409.
func AcceptPickup(c *gin.Context) {
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	volunteerID := authedUserID(c)
	if err := services.AssignVolunteer(config.DB, transactionID, volunteerID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup accepted"})
}

// MyAssignments lists every pickup the authenticated volunteer has
// accepted, any status.
func MyAssignments(c *gin.Context) {
	volunteerID := authedUserID(c)

	rows, err := services.VolunteerAssignments(config.DB, volunteerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// CompleteDelivery marks a delivery done. The service propagates the
// terminal status to the donation in the same storage transaction.
func CompleteDelivery(c *gin.Context) {
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.CompleteTransaction(config.DB, transactionID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Delivery completed"})
}
