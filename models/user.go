package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string
type UserType string
type Specialization string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleCustomer   Role = "customer"

	UserTypeIndividual UserType = "individual"
	UserTypeEnterprise UserType = "enterprise"

	// Insurance lines a staff member can specialize in
	SpecializationProperty Specialization = "property"
	SpecializationHealth   Specialization = "health"
	SpecializationVehicle  Specialization = "vehicle"
	SpecializationMarine   Specialization = "marine"
)

// OrgEmailDomain is the mandatory email suffix for internal accounts.
// Overridable from config at startup.
var OrgEmailDomain = "@tisbroker.com"

var ErrNotOrgEmail = errors.New("internal accounts must use an organizational email address")

// Level gives roles an explicit privilege ordering so call sites never
// compare role strings directly. super_admin and admin carry the same
// privileges everywhere in this system.
func (r Role) Level() int {
	switch r {
	case RoleSuperAdmin:
		return 4
	case RoleAdmin:
		return 3
	case RoleStaff:
		return 2
	case RoleCustomer:
		return 1
	default:
		return 0
	}
}

func (r Role) IsValid() bool {
	return r.Level() > 0
}

// IsAdmin reports whether the role is admin-class (admin or super_admin).
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsInternal reports whether the role belongs to the organization's own staff.
func (r Role) IsInternal() bool {
	return r == RoleAdmin || r == RoleSuperAdmin || r == RoleStaff
}

func (s Specialization) IsValid() bool {
	switch s {
	case SpecializationProperty, SpecializationHealth, SpecializationVehicle, SpecializationMarine:
		return true
	}
	return false
}

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Phone        *string `gorm:"uniqueIndex" json:"phone"`
	Role         Role    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	AvatarURL string `json:"avatar_url"`

	// Individual accounts
	CCCD string `json:"cccd"`

	// Enterprise accounts
	CompanyName string `json:"company_name"`
	TaxCode     string `json:"tax_code"`

	// Staff accounts
	Specialization Specialization `gorm:"type:varchar(20)" json:"specialization"`

	UserType UserType `gorm:"type:varchar(20)" json:"user_type"`
	IsActive bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave enforces the organizational-email rule for internal roles.
// The check runs on every save path so no admin, staff or super_admin row
// can ever be persisted with an outside email address. A partially loaded
// struct without its email falls back to the stored value, so column
// updates cannot starve the check.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if !u.Role.IsInternal() {
		return nil
	}
	email := u.Email
	if email == "" && u.ID != 0 {
		var stored User
		if err := tx.Session(&gorm.Session{NewDB: true}).
			Select("email").First(&stored, u.ID).Error; err == nil {
			email = stored.Email
		}
	}
	if email != "" && !strings.HasSuffix(email, OrgEmailDomain) {
		return ErrNotOrgEmail
	}
	return nil
}
