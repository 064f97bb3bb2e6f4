package models

import (
	"errors"
	"time"
)

// Consultation status is free-form; these are the values the system
// itself writes.
const (
	ConsultationStatusNew      = "new"
	ConsultationStatusAssigned = "assigned"
	ConsultationStatusClosed   = "closed"
)

var ErrConsultationNotFound = errors.New("consultation request not found")

// ConsultationRequest is an inbound customer inquiry, optionally tied to a
// product and to a logged-in user, routed to a staff specialist.
type ConsultationRequest struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CustomerName    string `gorm:"not null" json:"customer_name"`
	CustomerContact string `gorm:"not null" json:"customer_contact"` // email or phone

	ProductID *uint    `json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`

	UserID *uint `json:"user_id"` // set when submitted while logged in
	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`

	AssignedStaffID *uint `json:"assigned_staff_id"`
	AssignedStaff   *User `gorm:"foreignKey:AssignedStaffID;constraint:OnDelete:SET NULL" json:"-"`

	Status    string        `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Messages  []ChatMessage `gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE" json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
}

// ChatMessage is one entry of a consultation's append-only thread,
// ordered by creation time and immutable once created.
type ChatMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConsultationID uint      `gorm:"index;not null" json:"consultation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"-"`
	Message        string    `gorm:"not null" json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}
