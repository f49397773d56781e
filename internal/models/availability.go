package models

import "time"

type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayBooked    DayStatus = "booked"
	DayBlocked   DayStatus = "blocked"
)

// AvailabilityDay is one row of the per-villa calendar ledger. Rows are
// created lazily: a date with no row is available. BookingID is set only
// while Status is booked, so a cancellation can revert exactly the days that
// belong to it.
type AvailabilityDay struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	VillaID   uint      `gorm:"not null;uniqueIndex:idx_villa_date" json:"villa_id"`
	Date      time.Time `gorm:"not null;uniqueIndex:idx_villa_date" json:"date"`
	Status    DayStatus `gorm:"type:varchar(20);not null" json:"status"`
	BookingID *uint     `gorm:"index" json:"booking_id,omitempty"`
	UpdatedAt time.Time `json:"-"`
}

// Occupied reports whether the day blocks a new stay.
func (d DayStatus) Occupied() bool {
	return d == DayBooked || d == DayBlocked
}
