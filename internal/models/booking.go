package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking holds a guest's stay request. CheckIn/CheckOut are calendar dates
// at UTC midnight; the stay occupies [CheckIn, CheckOut), so the check-out
// day itself is free for the next guest.
type Booking struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	Reference           string        `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	VillaID             uint          `gorm:"not null;index" json:"villa_id"`
	GuestID             uint          `gorm:"not null;index" json:"guest_id"`
	HostID              uint          `gorm:"not null;index" json:"host_id"`
	CheckIn             time.Time     `gorm:"not null" json:"check_in"`
	CheckOut            time.Time     `gorm:"not null" json:"check_out"`
	GuestCount          int           `gorm:"not null" json:"guest_count"`
	TotalPrice          float64       `gorm:"not null" json:"total_price"`
	Status              BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Message             string        `gorm:"type:text" json:"message"`
	CancelReason        *string       `gorm:"type:varchar(100)" json:"cancel_reason,omitempty"`
	CancelMessage       *string       `gorm:"type:text" json:"cancel_message,omitempty"`
	CheckInInstructions *string       `gorm:"type:text" json:"check_in_instructions,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	Villa *Villa `gorm:"foreignKey:VillaID" json:"villa,omitempty"`
}

// Nights returns the whole-day length of the stay.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn) / (24 * time.Hour))
}

// IsParty reports whether userID is the guest or the host of the booking.
func (b *Booking) IsParty(userID uint) bool {
	return userID == b.GuestID || userID == b.HostID
}

// Overlaps reports whether two half-open date ranges share at least one night.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && checkIn.Before(b.CheckOut)
}
