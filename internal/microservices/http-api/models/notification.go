package models

import "time"

const (
	NotificationBookingRequested = "BOOKING_REQUESTED"
	NotificationBookingDecided   = "BOOKING_DECIDED"
)

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	Type      string    `gorm:"not null" json:"type"` // BOOKING_REQUESTED, BOOKING_DECIDED
	BookingID *string   `gorm:"type:uuid" json:"bookingId,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
