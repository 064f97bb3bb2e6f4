package models

import "time"

// EnterpriseEmployee is a beneficiary added by an enterprise account to be
// covered by a purchased policy. Owned by exactly one enterprise user.
type EnterpriseEmployee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnterpriseID uint      `gorm:"index;not null" json:"enterprise_id"`
	Enterprise   User      `gorm:"foreignKey:EnterpriseID;constraint:OnDelete:CASCADE" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}
