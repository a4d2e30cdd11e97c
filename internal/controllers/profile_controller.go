package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"goodness_grid/internal/config"
	"goodness_grid/internal/models"
)

// updateProfileInput lists the fields a user may change after signup.
// Email and role are immutable; a new password triggers a re-hash.
type updateProfileInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Password *string `json:"password"`
}

// GetProfile returns the authenticated user's record with the
// role-specific profile attached.
func GetProfile(c *gin.Context) {
	userID := authedUserID(c)

	var user models.User
	if err := config.DB.
		Preload("DonorProfile").
		Preload("NgoProfile").
		Preload("VolunteerProfile").
		First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			respondServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}

// UpdateProfile applies a partial edit to the authenticated user's
// contact details and optionally rotates the credential.
func UpdateProfile(c *gin.Context) {
	userID := authedUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			respondServiceError(c, err)
		}
		return
	}

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if input.Password != nil {
		if len(*input.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
			return
		}
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
			return
		}
		user.Password = hashed
	}

	if err := config.DB.Save(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": prepareUserResponse(user)})
}
