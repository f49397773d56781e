package models

import "time"

// Review is one half of a blind two-way review pair. Both halves stay hidden
// until the second party submits theirs; PrivateFeedback is never exposed to
// the reviewee.
type Review struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	BookingID       uint      `gorm:"not null;uniqueIndex:idx_booking_reviewer" json:"booking_id"`
	ReviewerID      uint      `gorm:"not null;uniqueIndex:idx_booking_reviewer" json:"reviewer_id"`
	RevieweeID      uint      `gorm:"not null;index" json:"reviewee_id"`
	Rating          int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment         string    `gorm:"type:text" json:"comment"`
	PrivateFeedback string    `gorm:"type:text" json:"-"`
	Visible         bool      `gorm:"not null;default:false;index" json:"visible"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
