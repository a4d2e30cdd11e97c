// internal/models/donation.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// DonationStatus is the closed lifecycle of a posted donation.
// Transitions only ever move forward: available -> claimed -> completed.
type DonationStatus string

const (
	DonationAvailable DonationStatus = "available"
	DonationClaimed   DonationStatus = "claimed"
	DonationCompleted DonationStatus = "completed"
)

// CanTransitionTo reports whether moving from s to next is a legal
// forward step. completed is terminal.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	switch s {
	case DonationAvailable:
		return next == DonationClaimed
	case DonationClaimed:
		return next == DonationCompleted
	default:
		return false
	}
}

func (s DonationStatus) Valid() bool {
	switch s {
	case DonationAvailable, DonationClaimed, DonationCompleted:
		return true
	}
	return false
}

type Donation struct {
	gorm.Model
	DonorID       uint           `json:"donor_id" gorm:"index"`
	Donor         User           `gorm:"foreignKey:DonorID" json:"-"`
	Type          string         `json:"type"` // "food", "clothes", "books", "medicine", ...
	Description   string         `json:"description"`
	Quantity      string         `json:"quantity"` // free-form amount with unit, e.g. "10 kg"
	PickupAddress string         `json:"pickup_address"`
	PickupTime    *time.Time     `json:"pickup_time,omitempty"`
	ExpiryDate    *time.Time     `json:"expiry_date,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Status        DonationStatus `json:"status" gorm:"type:varchar(20);default:'available';index"`
}
