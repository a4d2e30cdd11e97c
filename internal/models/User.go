package models

import "gorm.io/gorm"

// Role values accepted by the platform. "receiver" is normalized to
// RoleNgo at the API boundary.
const (
	RoleDonor     = "donor"
	RoleNgo       = "ngo"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"` // "donor", "ngo", "volunteer", "admin"
	Verified bool   `json:"verified" gorm:"default:false"`

	// Actor-specific relations
	DonorProfile     *DonorProfile     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"donor_profile,omitempty"`
	NgoProfile       *NgoProfile       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"ngo_profile,omitempty"`
	VolunteerProfile *VolunteerProfile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"volunteer_profile,omitempty"`
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleNgo, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}
