package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"goodness_grid/internal/config"
	"goodness_grid/internal/middleware"
	"goodness_grid/internal/models"
)

type signupInput struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Role           string `json:"role"`
	DonorType      string `json:"donor_type"`
	CompanyName    string `json:"company_name"`
	GstNo          string `json:"gst_no"`
	RegistrationNo string `json:"ngo_registration_no"`
	NgoType        string `json:"ngo_type"`
	Availability   string `json:"availability"`
	VehicleDetails string `json:"vehicle_details"`
}

func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Role = role

	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 6 characters"})
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	user, err := createUserRecord(tx, input, hashedPassword)
	if err != nil {
		tx.Rollback()
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	if err := createActorRecord(tx, &user, input); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create profile record: " + err.Error()})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not commit transaction: " + err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	query := config.DB.Where("email = ?", body.Email).
		Preload("DonorProfile").
		Preload("NgoProfile").
		Preload("VolunteerProfile")

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

// validateAndNormalizeRole lowercases the requested role and maps the
// "receiver" alias onto ngo. An empty role defaults to donor.
func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = models.RoleDonor
	}
	if role == "receiver" {
		role = models.RoleNgo
	}
	if !models.ValidRole(role) {
		return "", errors.New("invalid role")
	}
	return role, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func createUserRecord(tx *gorm.DB, input signupInput, hashedPassword string) (models.User, error) {
	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Phone:    input.Phone,
		Address:  input.Address,
		Role:     input.Role,
	}
	if err := tx.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// createActorRecord attaches the role-specific profile inside the signup
// transaction. Admins carry no extra record.
func createActorRecord(tx *gorm.DB, user *models.User, input signupInput) error {
	switch user.Role {
	case models.RoleDonor:
		donorType := input.DonorType
		if donorType == "" {
			donorType = "individual"
		}
		profile := models.DonorProfile{
			UserID:      user.ID,
			DonorType:   donorType,
			CompanyName: input.CompanyName,
			GstNo:       input.GstNo,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.DonorProfile = &profile
	case models.RoleNgo:
		profile := models.NgoProfile{
			UserID:         user.ID,
			RegistrationNo: input.RegistrationNo,
			NgoType:        input.NgoType,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.NgoProfile = &profile
	case models.RoleVolunteer:
		availability := input.Availability
		if availability == "" {
			availability = "Weekdays"
		}
		profile := models.VolunteerProfile{
			UserID:         user.ID,
			Availability:   availability,
			VehicleDetails: input.VehicleDetails,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.VolunteerProfile = &profile
	}
	return nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"address":   user.Address,
		"role":      user.Role,
		"verified":  user.Verified,
	}

	if user.DonorProfile != nil {
		responseUser["donor_profile"] = gin.H{
			"donor_type":   user.DonorProfile.DonorType,
			"company_name": user.DonorProfile.CompanyName,
			"gst_no":       user.DonorProfile.GstNo,
		}
	}
	if user.NgoProfile != nil {
		responseUser["ngo_profile"] = gin.H{
			"ngo_registration_no": user.NgoProfile.RegistrationNo,
			"ngo_type":            user.NgoProfile.NgoType,
		}
	}
	if user.VolunteerProfile != nil {
		responseUser["volunteer_profile"] = gin.H{
			"availability":    user.VolunteerProfile.Availability,
			"vehicle_details": user.VolunteerProfile.VehicleDetails,
		}
	}
	return responseUser
}
