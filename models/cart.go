package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem holds one package selection. The (cart, package) pair is unique;
// repeated adds accumulate quantity instead of inserting duplicate rows.
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CartID    uint           `gorm:"uniqueIndex:idx_cart_package;not null" json:"cart_id"`
	PackageID uint           `gorm:"uniqueIndex:idx_cart_package;not null" json:"package_id"`
	Package   ProductPackage `gorm:"foreignKey:PackageID" json:"package"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time      `gorm:"autoCreateTime" json:"added_at"`
}
