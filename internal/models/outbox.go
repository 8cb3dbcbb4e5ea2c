package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "PENDING"
	OutboxSent    OutboxStatus = "SENT"
	OutboxFailed  OutboxStatus = "FAILED"
)

// NotificationOutbox rows are written in the same transaction as the booking
// state change they describe, then handed off asynchronously by the relay.
type NotificationOutbox struct {
	ID        string       `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID string       `gorm:"type:uuid;not null;index" json:"booking_id"`
	EventType string       `gorm:"not null" json:"event_type"`
	Payload   []byte       `gorm:"type:jsonb;not null" json:"payload"`
	Status    OutboxStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time    `gorm:"type:timestamptz" json:"created_at"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NotificationOutbox) TableName() string {
	return "notification_outbox"
}

func (n *NotificationOutbox) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
