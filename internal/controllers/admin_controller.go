package controllers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"goodness_grid/internal/config"
	"goodness_grid/internal/models"
	"goodness_grid/internal/services"
)

// adminUserRow is the trimmed user listing for the admin panel; the
// credential hash never leaves the server.
type adminUserRow struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers returns every registered user, newest first.
func ListUsers(c *gin.Context) {
	var users []adminUserRow
	if err := config.DB.Model(&models.User{}).
		Select("id, name, email, phone, role, verified, created_at").
		Order("created_at DESC").
		Scan(&users).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// VerifyNgo flips an organization's verified flag. Only admins reach
// this handler; the route group enforces the role.
func VerifyNgo(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	res := config.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("verified", true)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	logrus.WithField("user_id", userID).Info("ngo verified")
	c.JSON(http.StatusOK, gin.H{"message": "User verified"})
}

// ListAllTransactions returns the full enriched transaction history.
func ListAllTransactions(c *gin.Context) {
	rows, err := services.AllTransactions(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// PlatformStats returns the platform-wide counters and completion rate.
func PlatformStats(c *gin.Context) {
	stats, err := services.GetPlatformStats(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// DonationTrend returns donations posted per day.
func DonationTrend(c *gin.Context) {
	rows, err := services.DonationTrend(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// DonationTypeDistribution returns donation counts per type.
func DonationTypeDistribution(c *gin.Context) {
	rows, err := services.DonationTypeDistribution(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// CompletionRateTrend returns the per-day completion rate series.
func CompletionRateTrend(c *gin.Context) {
	rows, err := services.CompletionRateTrend(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// UserGrowth returns signups per day.
func UserGrowth(c *gin.Context) {
	rows, err := services.UserGrowth(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// TopDonors returns the most active donors (?limit=N, default 10).
func TopDonors(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	rows, err := services.TopDonors(config.DB, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ExportDonationsCSV streams the donation ledger as a CSV attachment.
func ExportDonationsCSV(c *gin.Context) {
	rows, err := services.DonationExportRows(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="donations.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "donor_name", "type", "description", "quantity", "pickup_address", "status", "created_at"})
	for _, r := range rows {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.DonorName,
			r.Type,
			r.Description,
			r.Quantity,
			r.PickupAddress,
			string(r.Status),
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

// ExportTransactionsCSV streams the transaction ledger as a CSV attachment.
func ExportTransactionsCSV(c *gin.Context) {
	rows, err := services.TransactionExportRows(config.DB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "donation_id", "type", "donor_name", "ngo_name", "volunteer_name", "status", "created_at", "completed_at"})
	for _, r := range rows {
		volunteer := ""
		if r.VolunteerName != nil {
			volunteer = *r.VolunteerName
		}
		completedAt := ""
		if r.CompletedAt != nil {
			completedAt = r.CompletedAt.Format(time.RFC3339)
		}
		_ = w.Write([]string{
			strconv.FormatUint(uint64(r.ID), 10),
			strconv.FormatUint(uint64(r.DonationID), 10),
			r.Type,
			r.DonorName,
			r.NgoName,
			volunteer,
			string(r.Status),
			r.CreatedAt.Format(time.RFC3339),
			completedAt,
		})
	}
	w.Flush()
}
