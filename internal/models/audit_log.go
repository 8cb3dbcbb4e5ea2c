package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions, one per booking transition.
const (
	ActionBookingSubmitted = "BOOKING_SUBMITTED"
	ActionBookingApproved  = "BOOKING_APPROVED"
	ActionBookingRejected  = "BOOKING_REJECTED"
	ActionBookingCancelled = "BOOKING_CANCELLED"
)

// AuditLog is an append-only record of a booking state transition.
// Rows are never updated; they disappear only via cascade when the
// parent booking is deleted.
type AuditLog struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string         `gorm:"type:uuid;not null;index" json:"booking_id"`
	Action    string         `gorm:"not null" json:"action"`
	ActorID   string         `gorm:"not null" json:"actor_id"`
	ActorRole string         `gorm:"not null" json:"actor_role"`
	FromState *BookingStatus `gorm:"type:varchar(20)" json:"from_state,omitempty"`
	ToState   BookingStatus  `gorm:"type:varchar(20);not null" json:"to_state"`
	CreatedAt time.Time      `gorm:"type:timestamptz" json:"created_at"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
