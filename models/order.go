package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed, paperwork in progress
	OrderStatusActive    OrderStatus = "active"    // policy in effect
	OrderStatusCancelled OrderStatus = "cancelled"
)

var (
	ErrPackageNotFound   = errors.New("product package not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// CanTransition encodes the order lifecycle:
// pending -> confirmed -> active, or pending -> cancelled.
// active and cancelled are terminal.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusCancelled
	case OrderStatusConfirmed:
		return to == OrderStatusActive
	default:
		return false
	}
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusActive, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"uniqueIndex;not null" json:"code"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	User        User            `gorm:"foreignKey:UserID" json:"-"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric;not null" json:"total_amount"`

	// Admin who moved the order through its lifecycle.
	ProcessedByID *uint `json:"processed_by"`
	ProcessedBy   *User `gorm:"foreignKey:ProcessedByID" json:"-"`

	// Beneficiary list when an enterprise buys for its employees.
	BeneficiaryNote string `json:"beneficiary_note"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem captures the package reference plus the unit price at order
// time, so later package price changes never rewrite order history.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	PackageID uint            `gorm:"not null" json:"package_id"`
	Package   ProductPackage  `gorm:"foreignKey:PackageID" json:"package"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null" json:"unit_price"`
}
