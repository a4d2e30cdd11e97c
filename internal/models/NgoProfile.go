// internal/models/ngo_profile.go
package models

import "gorm.io/gorm"

// NgoProfile holds the registration details of a receiving organization.
// The verified flag lives on the User record and is flipped by an admin.
type NgoProfile struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"uniqueIndex"`
	RegistrationNo string `json:"ngo_registration_no"`
	NgoType        string `json:"ngo_type"` // "food bank", "shelter", "orphanage", ...
}
