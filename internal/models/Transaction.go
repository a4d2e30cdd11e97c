// internal/models/transaction.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// TransactionStatus is the closed lifecycle of a claim-to-completion record.
// pending -> in_progress -> completed, forward only.
type TransactionStatus string

const (
	TransactionPending    TransactionStatus = "pending"
	TransactionInProgress TransactionStatus = "in_progress"
	TransactionCompleted  TransactionStatus = "completed"
)

func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case TransactionPending:
		return next == TransactionInProgress
	case TransactionInProgress:
		return next == TransactionCompleted
	default:
		return false
	}
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionInProgress, TransactionCompleted:
		return true
	}
	return false
}

// Transaction links one Donation to the claiming NGO and, once a pickup
// is accepted, to exactly one volunteer. VolunteerID stays nil while the
// transaction is pending and transitions from nil to a value exactly once.
type Transaction struct {
	gorm.Model
	DonationID  uint              `json:"donation_id" gorm:"index"`
	Donation    Donation          `gorm:"foreignKey:DonationID" json:"-"`
	NgoID       uint              `json:"ngo_id" gorm:"index"`
	Ngo         User              `gorm:"foreignKey:NgoID" json:"-"`
	VolunteerID *uint             `json:"volunteer_id,omitempty" gorm:"index"`
	Volunteer   *User             `gorm:"foreignKey:VolunteerID" json:"-"`
	Status      TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
}
