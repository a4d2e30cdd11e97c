package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"goodness_grid/internal/config"
	"goodness_grid/internal/models"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.DonorProfile{},
		&models.NgoProfile{},
		&models.VolunteerProfile{},
		&models.Donation{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	r.POST("/auth/signup", SignupUser)
	r.POST("/auth/login", LoginUser)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupCreatesUserAndProfile(t *testing.T) {
	r := setupAuthTest(t)

	w := postJSON(t, r, "/auth/signup", `{
		"name": "Asha",
		"email": "asha@example.com",
		"password": "secret1",
		"phone": "0711000000",
		"role": "volunteer",
		"availability": "Weekends",
		"vehicle_details": "bicycle"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "volunteer", resp.User["role"])

	var profile models.VolunteerProfile
	require.NoError(t, config.DB.Where("user_id = ?", uint(resp.User["ID"].(float64))).First(&profile).Error)
	assert.Equal(t, "Weekends", profile.Availability)
	assert.Equal(t, "bicycle", profile.VehicleDetails)
}

func TestSignupNormalizesReceiverRole(t *testing.T) {
	r := setupAuthTest(t)

	w := postJSON(t, r, "/auth/signup", `{
		"name": "Food Bank",
		"email": "bank@example.com",
		"password": "secret1",
		"role": "receiver",
		"ngo_registration_no": "NGO-42",
		"ngo_type": "food bank"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, config.DB.Where("email = ?", "bank@example.com").First(&user).Error)
	assert.Equal(t, models.RoleNgo, user.Role)
	assert.False(t, user.Verified, "organizations start unverified")

	var profile models.NgoProfile
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "NGO-42", profile.RegistrationNo)
}

func TestSignupRejectsShortPasswordAndBadRole(t *testing.T) {
	r := setupAuthTest(t)

	w := postJSON(t, r, "/auth/signup", `{
		"name": "A", "email": "a@example.com", "password": "123", "role": "donor"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/auth/signup", `{
		"name": "A", "email": "a@example.com", "password": "secret1", "role": "wizard"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	r := setupAuthTest(t)

	body := `{"name": "Asha", "email": "dup@example.com", "password": "secret1", "role": "donor"}`
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/signup", body).Code)

	w := postJSON(t, r, "/auth/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var count int64
	require.NoError(t, config.DB.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginRoundtrip(t *testing.T) {
	r := setupAuthTest(t)

	require.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/signup",
		`{"name": "Asha", "email": "login@example.com", "password": "secret1", "role": "donor"}`).Code)

	w := postJSON(t, r, "/auth/login", `{"email": "login@example.com", "password": "secret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	w = postJSON(t, r, "/auth/login", `{"email": "login@example.com", "password": "wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/auth/login", `{"email": "nobody@example.com", "password": "secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
