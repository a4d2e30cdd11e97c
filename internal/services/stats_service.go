package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"goodness_grid/internal/models"
)

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	TotalUsers           int64            `json:"total_users"`
	UsersByRole          map[string]int64 `json:"users_by_role"`
	TotalDonations       int64            `json:"total_donations"`
	DonationsByStatus    map[string]int64 `json:"donations_by_status"`
	TotalTransactions    int64            `json:"total_transactions"`
	TransactionsByStatus map[string]int64 `json:"transactions_by_status"`
	CompletionRate       float64          `json:"completion_rate"`
}

// DayCount is one point of a per-day analytics series.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// TypeCount is one slice of the donation type distribution.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// CompletionPoint is one point of the completion-rate trend.
type CompletionPoint struct {
	Day       string  `json:"day"`
	Total     int64   `json:"total"`
	Completed int64   `json:"completed"`
	Rate      float64 `json:"rate"`
}

// TopDonor ranks donors by the number of donations posted. Ties are
// broken by ascending donor id so the ordering is stable.
type TopDonor struct {
	DonorID   uint   `json:"donor_id"`
	DonorName string `json:"donor_name"`
	Count     int64  `json:"count"`
}

type groupCount struct {
	Key   string
	Count int64
}

func countByColumn(db *gorm.DB, model interface{}, column string) (map[string]int64, int64, error) {
	var rows []groupCount
	err := db.Model(model).
		Select(column + " AS key, count(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	counts := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		counts[r.Key] = r.Count
		total += r.Count
	}
	return counts, total, nil
}

// completionRate returns 100*completed/total rounded to one decimal
// place, and 0 when there is nothing to rate.
func completionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// GetPlatformStats computes the platform-wide counters in one pass per
// table: users by role, donations and transactions by status, and the
// overall completion rate.
func GetPlatformStats(db *gorm.DB) (*PlatformStats, error) {
	usersByRole, totalUsers, err := countByColumn(db, &models.User{}, "role")
	if err != nil {
		return nil, err
	}
	donationsByStatus, totalDonations, err := countByColumn(db, &models.Donation{}, "status")
	if err != nil {
		return nil, err
	}
	transactionsByStatus, totalTransactions, err := countByColumn(db, &models.Transaction{}, "status")
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:           totalUsers,
		UsersByRole:          usersByRole,
		TotalDonations:       totalDonations,
		DonationsByStatus:    donationsByStatus,
		TotalTransactions:    totalTransactions,
		TransactionsByStatus: transactionsByStatus,
		CompletionRate:       completionRate(transactionsByStatus[string(models.TransactionCompleted)], totalTransactions),
	}, nil
}

func perDaySeries(db *gorm.DB, model interface{}) ([]DayCount, error) {
	// substr-over-cast truncates a timestamp to its calendar day and
	// behaves identically on postgres and sqlite.
	day := "substr(cast(created_at as text), 1, 10)"
	var rows []DayCount
	err := db.Model(model).
		Select(day + " AS day, count(*) AS count").
		Group(day).
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

// DonationTrend returns the number of donations posted per day, oldest
// day first.
func DonationTrend(db *gorm.DB) ([]DayCount, error) {
	return perDaySeries(db, &models.Donation{})
}

// UserGrowth returns the number of signups per day, oldest day first.
func UserGrowth(db *gorm.DB) ([]DayCount, error) {
	return perDaySeries(db, &models.User{})
}

// DonationTypeDistribution returns how many donations exist per type,
// largest slice first.
func DonationTypeDistribution(db *gorm.DB) ([]TypeCount, error) {
	var rows []TypeCount
	err := db.Model(&models.Donation{}).
		Select("type, count(*) AS count").
		Group("type").
		Order("count DESC, type ASC").
		Scan(&rows).Error
	return rows, err
}

// CompletionRateTrend returns, per day of transaction creation, how many
// transactions were opened and how many of those have completed.
func CompletionRateTrend(db *gorm.DB) ([]CompletionPoint, error) {
	day := "substr(cast(created_at as text), 1, 10)"
	var rows []CompletionPoint
	err := db.Model(&models.Transaction{}).
		Select(day+" AS day, count(*) AS total, sum(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed",
			models.TransactionCompleted).
		Group(day).
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Rate = completionRate(rows[i].Completed, rows[i].Total)
	}
	return rows, nil
}

// TopDonors returns the n donors with the most postings.
func TopDonors(db *gorm.DB, n int) ([]TopDonor, error) {
	var rows []TopDonor
	err := db.Table("donations d").
		Select("d.donor_id, u.name AS donor_name, count(*) AS count").
		Joins("JOIN users u ON u.id = d.donor_id").
		Where("d.deleted_at IS NULL").
		Group("d.donor_id, u.name").
		Order("count DESC, d.donor_id ASC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// DonorDashboard summarizes a donor's own postings.
type DonorDashboard struct {
	MyDonations int64 `json:"my_donations_count"`
	Available   int64 `json:"available_count"`
	Claimed     int64 `json:"claimed_count"`
	Completed   int64 `json:"completed_count"`
}

// GetDonorDashboard counts one donor's postings by status.
func GetDonorDashboard(db *gorm.DB, donorID uint) (*DonorDashboard, error) {
	var rows []groupCount
	err := db.Model(&models.Donation{}).
		Select("status AS key, count(*) AS count").
		Where("donor_id = ?", donorID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	dash := &DonorDashboard{}
	for _, r := range rows {
		dash.MyDonations += r.Count
		switch models.DonationStatus(r.Key) {
		case models.DonationAvailable:
			dash.Available = r.Count
		case models.DonationClaimed:
			dash.Claimed = r.Count
		case models.DonationCompleted:
			dash.Completed = r.Count
		}
	}
	return dash, nil
}

// NgoDashboard summarizes what an NGO can see: the open marketplace and
// its own claims.
type NgoDashboard struct {
	AvailableDonations int64 `json:"total_donations"`
	MyClaims           int64 `json:"claimed_count"`
	MyCompleted        int64 `json:"completed_count"`
}

// GetNgoDashboard counts available donations plus the NGO's claims.
func GetNgoDashboard(db *gorm.DB, ngoID uint) (*NgoDashboard, error) {
	dash := &NgoDashboard{}
	if err := db.Model(&models.Donation{}).
		Where("status = ?", models.DonationAvailable).
		Count(&dash.AvailableDonations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Transaction{}).
		Where("ngo_id = ?", ngoID).
		Count(&dash.MyClaims).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Transaction{}).
		Where("ngo_id = ? AND status = ?", ngoID, models.TransactionCompleted).
		Count(&dash.MyCompleted).Error; err != nil {
		return nil, err
	}
	return dash, nil
}

// VolunteerDashboard summarizes the volunteer work queue and the
// volunteer's own task history.
type VolunteerDashboard struct {
	PendingPickups int64 `json:"pending_pickups"`
	MyInProgress   int64 `json:"my_in_progress"`
	MyCompleted    int64 `json:"my_completed"`
}

// GetVolunteerDashboard counts unassigned pickups and the volunteer's
// accepted tasks by status.
func GetVolunteerDashboard(db *gorm.DB, volunteerID uint) (*VolunteerDashboard, error) {
	dash := &VolunteerDashboard{}
	if err := db.Model(&models.Transaction{}).
		Where("status = ? AND volunteer_id IS NULL", models.TransactionPending).
		Count(&dash.PendingPickups).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Transaction{}).
		Where("volunteer_id = ? AND status = ?", volunteerID, models.TransactionInProgress).
		Count(&dash.MyInProgress).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Transaction{}).
		Where("volunteer_id = ? AND status = ?", volunteerID, models.TransactionCompleted).
		Count(&dash.MyCompleted).Error; err != nil {
		return nil, err
	}
	return dash, nil
}

// DonationExportRow is a flat, denormalized donation line for CSV export.
type DonationExportRow struct {
	ID            uint                  `json:"id"`
	DonorName     string                `json:"donor_name"`
	Type          string                `json:"type"`
	Description   string                `json:"description"`
	Quantity      string                `json:"quantity"`
	PickupAddress string                `json:"pickup_address"`
	Status        models.DonationStatus `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
}

// DonationExportRows returns every donation with the donor name joined
// in, oldest first so exports read chronologically.
func DonationExportRows(db *gorm.DB) ([]DonationExportRow, error) {
	var rows []DonationExportRow
	err := db.Model(&models.Donation{}).
		Select(`donations.id, u.name AS donor_name, donations.type, donations.description,
donations.quantity, donations.pickup_address, donations.status, donations.created_at`).
		Joins("JOIN users u ON u.id = donations.donor_id").
		Order("donations.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// TransactionExportRow is a flat transaction line for CSV export.
type TransactionExportRow struct {
	ID            uint                     `json:"id"`
	DonationID    uint                     `json:"donation_id"`
	Type          string                   `json:"type"`
	DonorName     string                   `json:"donor_name"`
	NgoName       string                   `json:"ngo_name"`
	VolunteerName *string                  `json:"volunteer_name,omitempty"`
	Status        models.TransactionStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
}

// TransactionExportRows returns every transaction with all three
// participant names joined in, oldest first.
func TransactionExportRows(db *gorm.DB) ([]TransactionExportRow, error) {
	var rows []TransactionExportRow
	err := db.Table("transactions t").
		Select(`t.id, t.donation_id, d.type,
donor.name AS donor_name, ngo.name AS ngo_name, vol.name AS volunteer_name,
t.status, t.created_at, t.completed_at`).
		Joins("JOIN donations d ON d.id = t.donation_id").
		Joins("JOIN users donor ON donor.id = d.donor_id").
		Joins("JOIN users ngo ON ngo.id = t.ngo_id").
		Joins("LEFT JOIN users vol ON vol.id = t.volunteer_id").
		Where("t.deleted_at IS NULL").
		Order("t.created_at ASC").
		Scan(&rows).Error
	return rows, err
}
