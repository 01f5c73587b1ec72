package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending     BookingStatus = "pending"
	BookingAccepted    BookingStatus = "accepted"
	BookingRescheduled BookingStatus = "rescheduled"
	BookingCancelled   BookingStatus = "cancelled"
)

// BookingAction is a counsellor's decision on a pending request.
type BookingAction string

const (
	ActionAccept     BookingAction = "accept"
	ActionReschedule BookingAction = "reschedule"
	ActionCancel     BookingAction = "cancel"
)

// TargetStatus returns the terminal status an action moves a pending booking to.
func (a BookingAction) TargetStatus() (BookingStatus, bool) {
	switch a {
	case ActionAccept:
		return BookingAccepted, true
	case ActionReschedule:
		return BookingRescheduled, true
	case ActionCancel:
		return BookingCancelled, true
	}
	return "", false
}

// IsTerminal reports whether no further decision is accepted.
func (s BookingStatus) IsTerminal() bool {
	return s != BookingPending
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingAccepted, BookingRescheduled, BookingCancelled:
		return true
	}
	return false
}

type StudentInfo struct {
	ID    string `json:"id" gorm:"column:id;not null;index"`
	Name  string `json:"name" gorm:"column:name;not null"`
	Email string `json:"email" gorm:"column:email;not null"`
	Phone string `json:"phone" gorm:"column:phone"`
}

type BookingRequest struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid"`
	CounsellorID  string        `json:"counsellorId" gorm:"not null;index:idx_booking_counsellor_status"`
	Student       StudentInfo   `json:"student" gorm:"embedded;embeddedPrefix:student_"`
	RequestedDate string        `json:"requestedDate" gorm:"size:10;not null"`
	RequestedTime string        `json:"requestedTime" gorm:"size:5;not null"`
	Duration      int           `json:"duration" gorm:"not null;default:60"`
	SessionType   string        `json:"sessionType" gorm:"size:100;not null"`
	Notes         *string       `json:"notes,omitempty" gorm:"size:1000"`
	Status        BookingStatus `json:"status" gorm:"not null;default:'pending';index:idx_booking_counsellor_status"`
	DecidedAt     *time.Time    `json:"decidedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time     `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (b *BookingRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

func (BookingRequest) TableName() string {
	return "booking_requests"
}
