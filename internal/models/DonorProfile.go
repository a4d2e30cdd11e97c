// internal/models/donor_profile.go
package models

import "gorm.io/gorm"

type DonorProfile struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"unique"` // Foreign key to User
	DonorType   string `json:"donor_type"`            // "individual" or "business"
	CompanyName string `json:"company_name"`
	GstNo       string `json:"gst_no"`
	// Email, Password and Role live on the User model.
}
