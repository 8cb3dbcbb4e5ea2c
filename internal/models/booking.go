package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsLive reports whether the booking counts toward the room-overlap invariant.
func (s BookingStatus) IsLive() bool {
	return s == StatusPending || s == StatusApproved
}

// CanTransitionTo encodes the booking lifecycle:
// PENDING → APPROVED | REJECTED | CANCELLED, APPROVED → CANCELLED.
// REJECTED and CANCELLED are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusApproved, StatusRejected:
		return s == StatusPending
	case StatusCancelled:
		return s.IsLive()
	default:
		return false
	}
}

type BookingPriority string

const (
	PriorityLow    BookingPriority = "LOW"
	PriorityNormal BookingPriority = "NORMAL"
	PriorityHigh   BookingPriority = "HIGH"
)

func (p BookingPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID          string          `gorm:"type:uuid;not null;index:idx_bookings_room_status" json:"room_id"`
	RequesterID     string          `gorm:"not null" json:"requester_id"`
	RequesterRole   string          `gorm:"not null" json:"requester_role"`
	Purpose         string          `gorm:"type:text;not null" json:"purpose"`
	Priority        BookingPriority `gorm:"type:varchar(10);not null;default:'NORMAL'" json:"priority"`
	StartTime       time.Time       `gorm:"type:timestamptz;not null" json:"start_time"`
	EndTime         time.Time       `gorm:"type:timestamptz;not null" json:"end_time"`
	Status          BookingStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_bookings_room_status" json:"status"`
	ConflictFlag    bool            `gorm:"not null;default:false" json:"conflict_flag"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ApprovedBy      *string         `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `gorm:"type:timestamptz" json:"approved_at,omitempty"`
	CancelledBy     *string         `json:"cancelled_by,omitempty"`
	CancelledAt     *time.Time      `gorm:"type:timestamptz" json:"cancelled_at,omitempty"`
	CreatedAt       time.Time       `gorm:"type:timestamptz" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"type:timestamptz" json:"updated_at"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
