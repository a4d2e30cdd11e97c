// internal/models/volunteer_profile.go
package models

import "gorm.io/gorm"

type VolunteerProfile struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"unique"`
	Availability   string `json:"availability"` // e.g. "Weekdays", "Weekends"
	VehicleDetails string `json:"vehicle_details"`
}
