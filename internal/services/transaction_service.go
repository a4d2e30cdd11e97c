package services

import (
	"errors"
	"fmt"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"goodness_grid/internal/models"
)

// PickupRow is a transaction enriched with its donation fields and both
// counterparty identities, shaped for the volunteer-facing views.
type PickupRow struct {
	TransactionID uint                     `json:"transaction_id"`
	DonationID    uint                     `json:"donation_id"`
	NgoID         uint                     `json:"ngo_id"`
	VolunteerID   *uint                    `json:"volunteer_id,omitempty"`
	Status        models.TransactionStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	Type          string                   `json:"type"`
	Description   string                   `json:"description"`
	Quantity      string                   `json:"quantity"`
	PickupAddress string                   `json:"pickup_address"`
	PickupTime    *time.Time               `json:"pickup_time,omitempty"`
	DonorName     string                   `json:"donor_name"`
	DonorPhone    string                   `json:"donor_phone"`
	DonorAddress  string                   `json:"donor_address"`
	NgoName       string                   `json:"ngo_name"`
	NgoPhone      string                   `json:"ngo_phone"`
	NgoAddress    string                   `json:"ngo_address"`
}

const pickupRowSelect = `t.id AS transaction_id, t.donation_id, t.ngo_id, t.volunteer_id,
t.status, t.created_at, t.completed_at,
d.type, d.description, d.quantity, d.pickup_address, d.pickup_time,
donor.name AS donor_name, donor.phone AS donor_phone, donor.address AS donor_address,
ngo.name AS ngo_name, ngo.phone AS ngo_phone, ngo.address AS ngo_address`

// ClaimedDonationRow is a donation seen from the claiming NGO's side,
// carrying the transaction that backs the claim.
type ClaimedDonationRow struct {
	DonationID        uint                     `json:"donation_id"`
	Type              string                   `json:"type"`
	Description       string                   `json:"description"`
	Quantity          string                   `json:"quantity"`
	PickupAddress     string                   `json:"pickup_address"`
	Status            models.DonationStatus    `json:"status"`
	CreatedAt         time.Time                `json:"created_at"`
	TransactionID     uint                     `json:"transaction_id"`
	TransactionStatus models.TransactionStatus `json:"transaction_status"`
	DonorName         string                   `json:"donor_name"`
}

// AdminTransactionRow is the admin-facing listing; the volunteer name is
// nullable until a pickup has been accepted.
type AdminTransactionRow struct {
	TransactionID uint                     `json:"transaction_id"`
	DonationID    uint                     `json:"donation_id"`
	Status        models.TransactionStatus `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	Type          string                   `json:"type"`
	Description   string                   `json:"description"`
	DonorName     string                   `json:"donor_name"`
	NgoName       string                   `json:"ngo_name"`
	VolunteerName *string                  `json:"volunteer_name,omitempty"`
}

// PendingPickups returns the volunteer work queue: transactions still
// pending with no volunteer attached, newest first.
func PendingPickups(db *gorm.DB) ([]PickupRow, error) {
	var rows []PickupRow
	err := db.Table("transactions t").
		Select(pickupRowSelect).
		Joins("JOIN donations d ON d.id = t.donation_id").
		Joins("JOIN users donor ON donor.id = d.donor_id").
		Joins("JOIN users ngo ON ngo.id = t.ngo_id").
		Where("t.status = ? AND t.volunteer_id IS NULL", models.TransactionPending).
		Where("t.deleted_at IS NULL").
		Order("t.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// VolunteerAssignments returns every transaction a volunteer has accepted,
// any status, newest first.
func VolunteerAssignments(db *gorm.DB, volunteerID uint) ([]PickupRow, error) {
	var rows []PickupRow
	err := db.Table("transactions t").
		Select(pickupRowSelect).
		Joins("JOIN donations d ON d.id = t.donation_id").
		Joins("JOIN users donor ON donor.id = d.donor_id").
		Joins("JOIN users ngo ON ngo.id = t.ngo_id").
		Where("t.volunteer_id = ?", volunteerID).
		Where("t.deleted_at IS NULL").
		Order("t.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ClaimedByNgo returns the donations an NGO has claimed, joined to the
// backing transaction, newest claim first.
func ClaimedByNgo(db *gorm.DB, ngoID uint) ([]ClaimedDonationRow, error) {
	var rows []ClaimedDonationRow
	err := db.Table("donations d").
		Select(`d.id AS donation_id, d.type, d.description, d.quantity, d.pickup_address,
d.status, d.created_at,
t.id AS transaction_id, t.status AS transaction_status,
u.name AS donor_name`).
		Joins("JOIN transactions t ON t.donation_id = d.id").
		Joins("JOIN users u ON u.id = d.donor_id").
		Where("t.ngo_id = ?", ngoID).
		Where("t.deleted_at IS NULL").
		Order("t.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// AssignVolunteer attaches a volunteer to a pending transaction and moves
// it to in_progress. The update is guarded on the current status and the
// absence of a volunteer, so two volunteers racing onto the same pickup
// cannot both win.
func AssignVolunteer(db *gorm.DB, transactionID, volunteerID uint) error {
	res := db.Model(&models.Transaction{}).
		Where("id = ? AND status = ? AND volunteer_id IS NULL", transactionID, models.TransactionPending).
		Updates(map[string]interface{}{
			"volunteer_id": volunteerID,
			"status":       models.TransactionInProgress,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var txn models.Transaction
		if err := db.First(&txn, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
			}
			return err
		}
		return fmt.Errorf("%w: transaction %d is already %s", ErrConflict, transactionID, txn.Status)
	}

	logrus.WithFields(logrus.Fields{"transaction_id": transactionID, "volunteer_id": volunteerID}).
		Info("volunteer assigned")
	return nil
}

// CompleteTransaction marks an in_progress transaction completed and
// propagates the terminal status to its donation, both inside one storage
// transaction so no reader ever sees one updated without the other.
// Re-completing an already-completed transaction is a no-op success;
// completing a still-pending one is rejected.
func CompleteTransaction(db *gorm.DB, transactionID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.First(&txn, transactionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, transactionID)
			}
			return err
		}

		if txn.Status == models.TransactionCompleted {
			return nil
		}
		if !txn.Status.CanTransitionTo(models.TransactionCompleted) {
			return fmt.Errorf("%w: transaction %d is %s, not in_progress", ErrConflict, transactionID, txn.Status)
		}

		now := time.Now()
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", transactionID, models.TransactionInProgress).
			Updates(map[string]interface{}{
				"status":       models.TransactionCompleted,
				"completed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: transaction %d changed state concurrently", ErrConflict, transactionID)
		}

		res = tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", txn.DonationID, models.DonationClaimed).
			Update("status", models.DonationCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: donation %d is not in claimed state", ErrConflict, txn.DonationID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithField("transaction_id", transactionID).Info("transaction completed")
	return nil
}

// AllTransactions returns every transaction for the admin panel, enriched
// with donation and participant names, newest first.
func AllTransactions(db *gorm.DB) ([]AdminTransactionRow, error) {
	var rows []AdminTransactionRow
	err := db.Table("transactions t").
		Select(`t.id AS transaction_id, t.donation_id, t.status, t.created_at, t.completed_at,
d.type, d.description,
donor.name AS donor_name, ngo.name AS ngo_name, vol.name AS volunteer_name`).
		Joins("JOIN donations d ON d.id = t.donation_id").
		Joins("JOIN users donor ON donor.id = d.donor_id").
		Joins("JOIN users ngo ON ngo.id = t.ngo_id").
		Joins("LEFT JOIN users vol ON vol.id = t.volunteer_id").
		Where("t.deleted_at IS NULL").
		Order("t.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
