package models

import "time"

// User is deliberately thin: authentication and profile management live in a
// separate service. This table exists so villas, bookings and reviews have a
// real foreign target and so role checks can be answered locally.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"type:varchar(20);not null;default:'guest'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
