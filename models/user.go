package models

import (
	"time"
)

// Role is the access level of a FreshCheck user.
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleInspector       Role = "INSPECTOR"
	RoleKitchenManager  Role = "KITCHEN_MANAGER"
	RoleHotelManagement Role = "HOTEL_MANAGEMENT"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleInspector, RoleKitchenManager, RoleHotelManagement}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	Role      Role      `gorm:"type:varchar(32);not null;default:'INSPECTOR';index" json:"role"`
}
