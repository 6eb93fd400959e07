package models

import "gorm.io/gorm"

// User roles. Staff accounts can manage the catalogue, the order
// pipeline, and the sales dashboard.
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
)

// User is an account that can shop and, if staff, administer the store.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;not null;default:customer" json:"role"`
}

// IsStaff reports whether the user may access the admin surface.
func (u *User) IsStaff() bool { return u.Role == RoleStaff }
