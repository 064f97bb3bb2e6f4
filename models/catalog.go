package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TargetAudience string

const (
	AudienceIndividual TargetAudience = "individual"
	AudienceEnterprise TargetAudience = "enterprise"
)

// Category groups products and carries the specialization code used to
// route consultation requests to staff.
type Category struct {
	ID                 uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string         `gorm:"not null" json:"name"`
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`
	SpecializationCode Specialization `gorm:"type:varchar(20);not null" json:"specialization_code"`
}

type Product struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID uint     `gorm:"index;not null" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category"`
	Name       string   `gorm:"not null" json:"name"`

	// Name of the providing insurer. Admin-only; stripped for everyone
	// else at serialization time, never at storage time.
	ProviderName string `gorm:"not null" json:"provider_name"`

	Description    string         `json:"description"`
	IsFeatured     bool           `gorm:"not null;default:false" json:"is_featured"`
	IsPriceHidden  bool           `gorm:"not null;default:false" json:"is_price_hidden"`
	TargetAudience TargetAudience `gorm:"type:varchar(10)" json:"target_audience"`

	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Packages []ProductPackage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"packages"`

	CreatedAt time.Time `json:"created_at"`
}

// ProductImage is one entry of a product's ordered gallery. The image
// bytes live in the upload store; only the path is persisted.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	ImageURL  string `gorm:"not null" json:"image_url"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

// ProductPackage is the purchasable unit: a duration/price variant of a
// product ("6 Tháng", "1 Năm"...). Cart and order items reference it.
type ProductPackage struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductID     uint            `gorm:"index;not null" json:"product_id"`
	Product       Product         `gorm:"foreignKey:ProductID" json:"-"`
	DurationLabel string          `gorm:"not null" json:"duration_label"`
	Price         decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	DurationDays  int             `gorm:"not null" json:"duration_days"`
}

type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	ImageURL  string    `json:"image_url"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
