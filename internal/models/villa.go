package models

import "time"

type VillaStatus string

const (
	VillaDraft    VillaStatus = "draft"
	VillaListed   VillaStatus = "listed"
	VillaUnlisted VillaStatus = "unlisted"
)

type Villa struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	HostID        uint        `gorm:"not null;index" json:"host_id"`
	Title         string      `gorm:"not null" json:"title"`
	Description   string      `gorm:"type:text" json:"description"`
	City          string      `gorm:"not null;index" json:"city"`
	Country       string      `gorm:"not null;index" json:"country"`
	PropertyType  string      `gorm:"type:varchar(50);not null" json:"property_type"`
	MaxGuests     int         `gorm:"not null" json:"max_guests"`
	Bedrooms      int         `gorm:"not null" json:"bedrooms"`
	Bathrooms     int         `gorm:"not null" json:"bathrooms"`
	NightlyPrice  float64     `gorm:"not null" json:"nightly_price"`
	CleaningFee   *float64    `json:"cleaning_fee,omitempty"`
	MinimumNights int         `gorm:"not null;default:1" json:"minimum_nights"`
	Status        VillaStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Amenities []VillaAmenity `gorm:"foreignKey:VillaID;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
}

type VillaAmenity struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	VillaID uint   `gorm:"not null;uniqueIndex:idx_villa_amenity" json:"-"`
	Name    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_villa_amenity" json:"name"`
}
