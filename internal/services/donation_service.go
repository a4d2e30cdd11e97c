package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"goodness_grid/internal/models"
)

// DonationInput carries the donor-supplied fields of a new posting.
type DonationInput struct {
	Type          string
	Description   string
	Quantity      string
	PickupAddress string
	PickupTime    *time.Time
	ExpiryDate    *time.Time
	Notes         string
}

// DonationRow is a donation enriched with the donor's identity for display.
type DonationRow struct {
	ID            uint                  `json:"id"`
	DonorID       uint                  `json:"donor_id"`
	Type          string                `json:"type"`
	Description   string                `json:"description"`
	Quantity      string                `json:"quantity"`
	PickupAddress string                `json:"pickup_address"`
	PickupTime    *time.Time            `json:"pickup_time,omitempty"`
	ExpiryDate    *time.Time            `json:"expiry_date,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	Status        models.DonationStatus `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	DonorName     string                `json:"donor_name"`
	DonorPhone    string                `json:"donor_phone"`
	DonorEmail    string                `json:"donor_email,omitempty"`
}

const donationRowSelect = `donations.id, donations.donor_id, donations.type, donations.description,
donations.quantity, donations.pickup_address, donations.pickup_time, donations.expiry_date,
donations.notes, donations.status, donations.created_at,
u.name AS donor_name, u.phone AS donor_phone, u.email AS donor_email`

// CreateDonation inserts a new posting with status available and returns
// its id. The donor must be an existing user with the donor role.
func CreateDonation(db *gorm.DB, donorID uint, input DonationInput) (uint, error) {
	if strings.TrimSpace(input.Type) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Quantity) == "" ||
		strings.TrimSpace(input.PickupAddress) == "" {
		return 0, fmt.Errorf("%w: type, description, quantity and pickup_address are required", ErrValidation)
	}

	var donor models.User
	if err := db.First(&donor, donorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: donor %d", ErrNotFound, donorID)
		}
		return 0, err
	}
	if donor.Role != models.RoleDonor {
		return 0, fmt.Errorf("%w: user %d is not a donor", ErrValidation, donorID)
	}

	donation := models.Donation{
		DonorID:       donorID,
		Type:          input.Type,
		Description:   input.Description,
		Quantity:      input.Quantity,
		PickupAddress: input.PickupAddress,
		PickupTime:    input.PickupTime,
		ExpiryDate:    input.ExpiryDate,
		Notes:         input.Notes,
		Status:        models.DonationAvailable,
	}
	if err := db.Create(&donation).Error; err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{"donation_id": donation.ID, "donor_id": donorID}).
		Info("donation posted")
	return donation.ID, nil
}

// ListDonations returns donations in the given status, newest first,
// with the donor's name and phone joined in for display.
func ListDonations(db *gorm.DB, status models.DonationStatus) ([]DonationRow, error) {
	var rows []DonationRow
	err := db.Model(&models.Donation{}).
		Select(donationRowSelect).
		Joins("JOIN users u ON u.id = donations.donor_id").
		Where("donations.status = ?", status).
		Order("donations.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ListDonationsByDonor returns everything one donor has posted, any
// status, newest first.
func ListDonationsByDonor(db *gorm.DB, donorID uint) ([]models.Donation, error) {
	var donations []models.Donation
	err := db.Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Find(&donations).Error
	return donations, err
}

// GetDonation returns a single donation with the donor identity attached.
func GetDonation(db *gorm.DB, donationID uint) (*DonationRow, error) {
	var row DonationRow
	err := db.Model(&models.Donation{}).
		Select(donationRowSelect).
		Joins("JOIN users u ON u.id = donations.donor_id").
		Where("donations.id = ?", donationID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, fmt.Errorf("%w: donation %d", ErrNotFound, donationID)
	}
	return &row, nil
}

// SearchDonations filters donations by a case-insensitive keyword against
// description or quantity and by an exact type. The sentinel "all" (or an
// empty type) disables the type filter; an empty query disables the
// keyword filter. With neither filter this matches ListDonations.
func SearchDonations(db *gorm.DB, query, typeFilter string, status models.DonationStatus) ([]DonationRow, error) {
	q := db.Model(&models.Donation{}).
		Select(donationRowSelect).
		Joins("JOIN users u ON u.id = donations.donor_id").
		Where("donations.status = ?", status)

	if query = strings.TrimSpace(query); query != "" {
		term := "%" + strings.ToLower(query) + "%"
		q = q.Where("(LOWER(donations.description) LIKE ? OR LOWER(donations.quantity) LIKE ?)", term, term)
	}
	if typeFilter != "" && typeFilter != "all" {
		q = q.Where("donations.type = ?", typeFilter)
	}

	var rows []DonationRow
	err := q.Order("donations.created_at DESC").Scan(&rows).Error
	return rows, err
}

// ClaimDonation atomically flips an available donation to claimed and
// opens its pending Transaction for the claiming NGO. The status update is
// guarded on the current status, so of two racing claimants exactly one
// sees a row affected; the loser gets ErrConflict and the unit rolls back,
// leaving no orphan transaction behind.
func ClaimDonation(db *gorm.DB, donationID, ngoID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", donationID, models.DonationAvailable).
			Update("status", models.DonationClaimed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: donation %d is not available", ErrConflict, donationID)
		}

		txn := models.Transaction{
			DonationID: donationID,
			NgoID:      ngoID,
			Status:     models.TransactionPending,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"donation_id": donationID, "ngo_id": ngoID}).
		Info("donation claimed")
	return nil
}
